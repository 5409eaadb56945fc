package orchestrator

import (
	"context"

	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/compozy/upstream-sync/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Mock for GitExtendedRepository
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

func (m *mockGitRepository) ConfigureUser(ctx context.Context, name, email string) error {
	args := m.Called(ctx, name, email)
	return args.Error(0)
}

func (m *mockGitRepository) AddRemote(ctx context.Context, name, url string, creds repository.Credentials) error {
	args := m.Called(ctx, name, url, creds)
	return args.Error(0)
}

func (m *mockGitRepository) FetchBranch(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}

func (m *mockGitRepository) FetchTags(ctx context.Context, remote string) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}

func (m *mockGitRepository) Pull(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}

func (m *mockGitRepository) ResetHard(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *mockGitRepository) PushBranch(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}

func (m *mockGitRepository) PushBranchForce(ctx context.Context, remote, branch string) error {
	args := m.Called(ctx, remote, branch)
	return args.Error(0)
}

func (m *mockGitRepository) ListTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockGitRepository) DeleteLocalTags(ctx context.Context, tags []string) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

func (m *mockGitRepository) DeleteRemoteTags(ctx context.Context, remote string, tags []string) error {
	args := m.Called(ctx, remote, tags)
	return args.Error(0)
}

func (m *mockGitRepository) PushTags(ctx context.Context, remote string) error {
	args := m.Called(ctx, remote)
	return args.Error(0)
}

// methods returns the mocked method names in call order
func (m *mockGitRepository) methods() []string {
	names := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		names = append(names, c.Method)
	}
	return names
}

// Mock for Cloner
type mockCloner struct {
	mock.Mock
}

func (m *mockCloner) Clone(ctx context.Context, opts repository.CloneOptions) (repository.GitExtendedRepository, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.GitExtendedRepository), args.Error(1)
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
