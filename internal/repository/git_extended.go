package repository

import "context"

// GitExtendedRepository extends GitRepository with the write operations used to sync a target.
type GitExtendedRepository interface {
	GitRepository
	// Git configuration
	ConfigureUser(ctx context.Context, name, email string) error
	// Remote operations
	AddRemote(ctx context.Context, name, url string, creds Credentials) error
	FetchBranch(ctx context.Context, remote, branch string) error
	FetchTags(ctx context.Context, remote string) error
	// Branch operations
	Pull(ctx context.Context, remote, branch string) error
	ResetHard(ctx context.Context, ref string) error
	PushBranch(ctx context.Context, remote, branch string) error
	PushBranchForce(ctx context.Context, remote, branch string) error
	// Tag operations
	ListTags(ctx context.Context) ([]string, error)
	DeleteLocalTags(ctx context.Context, tags []string) error
	DeleteRemoteTags(ctx context.Context, remote string, tags []string) error
	PushTags(ctx context.Context, remote string) error
}

// Cloner creates local working copies of remote repositories.
type Cloner interface {
	Clone(ctx context.Context, opts CloneOptions) (GitExtendedRepository, error)
}

// CloneOptions describes a single-branch clone.
type CloneOptions struct {
	URL    string
	Branch string
	Dir    string
	Auth   Credentials
}
