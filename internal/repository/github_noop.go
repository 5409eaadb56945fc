package repository

import (
	"context"
	"errors"
	"fmt"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

func NewGithubNoopRepository(owner, repo string) VariableRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) GetVariable(_ context.Context, _ string) (string, error) {
	return "", r.operationError("read repository variable")
}

func (r *githubNoopRepository) CreateVariable(_ context.Context, _, _ string) error {
	return r.operationError("create repository variable")
}

func (r *githubNoopRepository) UpdateVariable(_ context.Context, _, _ string) error {
	return r.operationError("update repository variable")
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s for %s/%s", ErrGithubTokenRequired, action, r.owner, r.repo)
}
