package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/upstream-sync/internal/config"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the VariableRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new VariableRepository with validation. An
// empty apiURL targets github.com; otherwise it is a GitHub Enterprise API URL.
func NewGithubRepository(token, owner, repo, apiURL string) (VariableRepository, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("invalid GitHub token: token cannot be empty")
	}

	// Validate owner and repo names using the consolidated validator
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
	}

	return &githubRepository{
		client: client,
		owner:  owner,
		repo:   repo,
	}, nil
}

// GetVariable returns the value of a repository variable.
func (r *githubRepository) GetVariable(ctx context.Context, name string) (string, error) {
	variable, resp, err := r.client.Actions.GetRepoVariable(ctx, r.owner, r.repo, name)
	if err != nil {
		if isNotFound(resp, err) {
			return "", fmt.Errorf("%w: %s in %s/%s", ErrVariableNotFound, name, r.owner, r.repo)
		}
		return "", fmt.Errorf("failed to get variable %s: %w", name, err)
	}
	return variable.Value, nil
}

// CreateVariable creates a repository variable.
func (r *githubRepository) CreateVariable(ctx context.Context, name, value string) error {
	_, err := r.client.Actions.CreateRepoVariable(ctx, r.owner, r.repo, &github.ActionsVariable{
		Name:  name,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to create variable %s: %w", name, err)
	}
	return nil
}

// UpdateVariable updates an existing repository variable.
func (r *githubRepository) UpdateVariable(ctx context.Context, name, value string) error {
	_, err := r.client.Actions.UpdateRepoVariable(ctx, r.owner, r.repo, &github.ActionsVariable{
		Name:  name,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to update variable %s: %w", name, err)
	}
	return nil
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResponse *github.ErrorResponse
	return errors.As(err, &errResponse) &&
		errResponse.Response != nil &&
		errResponse.Response.StatusCode == http.StatusNotFound
}
