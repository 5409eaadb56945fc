package usecase

import (
	"context"

	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) History(ctx context.Context) (domain.History, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.History), args.Error(1)
}

func (m *mockGitRepository) TagHistory(ctx context.Context) (domain.TagHistory, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.TagHistory), args.Error(1)
}

func (m *mockGitRepository) Path() string {
	args := m.Called()
	return args.String(0)
}

// Mock for VariableRepository
type mockVariableRepository struct {
	mock.Mock
}

func (m *mockVariableRepository) GetVariable(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *mockVariableRepository) CreateVariable(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *mockVariableRepository) UpdateVariable(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func commits(ids ...string) []domain.Commit {
	out := make([]domain.Commit, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Commit{ID: id, Message: "commit " + id})
	}
	return out
}

func tagHistory(names ...string) domain.TagHistory {
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, domain.Tag{Name: name})
	}
	return domain.NewTagHistory(tags)
}
