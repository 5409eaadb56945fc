package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.uber.org/zap"
)

// Credentials authenticate HTTPS transport. The zero value means anonymous.
type Credentials struct {
	Username string
	Password string
}

// authMethod returns nil for anonymous access so go-git never sees a typed nil.
func (c Credentials) authMethod() transport.AuthMethod {
	if c.Password == "" {
		return nil
	}
	username := c.Username
	if username == "" {
		username = "x-access-token"
	}
	return &http.BasicAuth{Username: username, Password: c.Password}
}

// RedactURL hides any password embedded in a remote URL.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

// gitCloner is the go-git implementation of the Cloner interface.
type gitCloner struct {
	logger *zap.Logger
}

// NewGitCloner creates a new Cloner.
func NewGitCloner(logger *zap.Logger) Cloner {
	return &gitCloner{logger: logger}
}

// Clone clones a single branch with all its tags. An empty remote produces an
// initialized repository with origin configured and HEAD on the branch.
func (c *gitCloner) Clone(ctx context.Context, opts CloneOptions) (GitExtendedRepository, error) {
	log := c.logger.With(zap.String("url", RedactURL(opts.URL)), zap.String("branch", opts.Branch))
	log.Debug("cloning repository", zap.String("dir", opts.Dir))
	auth := opts.Auth.authMethod()
	repo, err := git.PlainCloneContext(ctx, opts.Dir, false, &git.CloneOptions{
		URL:           opts.URL,
		Auth:          auth,
		ReferenceName: plumbing.NewBranchReferenceName(opts.Branch),
		SingleBranch:  true,
		Tags:          git.AllTags,
	})
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		log.Info("remote repository is empty, initializing local copy")
		repo, err = initEmptyClone(opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", RedactURL(opts.URL), err)
	}
	return &gitRepository{
		repo:   repo,
		path:   opts.Dir,
		auth:   map[string]transport.AuthMethod{git.DefaultRemoteName: auth},
		logger: c.logger.With(zap.String("repo", opts.Dir)),
	}, nil
}

func initEmptyClone(opts CloneOptions) (*git.Repository, error) {
	if err := os.RemoveAll(opts.Dir); err != nil {
		return nil, fmt.Errorf("failed to clean clone directory: %w", err)
	}
	repo, err := git.PlainInit(opts.Dir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{opts.URL},
	}); err != nil {
		return nil, fmt.Errorf("failed to create origin remote: %w", err)
	}
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(opts.Branch))
	if err := repo.Storer.SetReference(head); err != nil {
		return nil, fmt.Errorf("failed to point HEAD at %s: %w", opts.Branch, err)
	}
	return repo, nil
}

// OpenGitRepository opens an existing working copy.
func OpenGitRepository(path string, logger *zap.Logger) (GitExtendedRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{
		repo:   repo,
		path:   path,
		auth:   map[string]transport.AuthMethod{},
		logger: logger.With(zap.String("repo", path)),
	}, nil
}

// gitRepository is the implementation of the GitExtendedRepository interface.
type gitRepository struct {
	repo   *git.Repository
	path   string
	auth   map[string]transport.AuthMethod
	logger *zap.Logger
}

// Path returns the working copy directory.
func (r *gitRepository) Path() string {
	return r.path
}

// History returns the commits reachable from HEAD, newest first.
func (r *gitRepository) History(_ context.Context) (domain.History, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return domain.NewHistory(nil), nil
	}
	if err != nil {
		return domain.History{}, fmt.Errorf("failed to get HEAD: %w", err)
	}
	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return domain.History{}, fmt.Errorf("failed to get commits: %w", err)
	}
	var commits []domain.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, domain.Commit{
			ID:      c.Hash.String(),
			Message: subject(c.Message),
		})
		return nil
	})
	if err != nil {
		return domain.History{}, fmt.Errorf("failed to iterate commits: %w", err)
	}
	return domain.NewHistory(commits), nil
}

func subject(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(line)
}

// TagHistory returns all tags ordered by creation time. Annotated tags use
// the tagger date, lightweight tags the author date of their commit.
func (r *gitRepository) TagHistory(_ context.Context) (domain.TagHistory, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return domain.TagHistory{}, fmt.Errorf("failed to get tags: %w", err)
	}
	var tags []domain.Tag
	if err := refs.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, domain.Tag{
			Name:      ref.Name().Short(),
			CreatedAt: r.tagTime(ref),
		})
		return nil
	}); err != nil {
		return domain.TagHistory{}, fmt.Errorf("failed to iterate tags: %w", err)
	}
	// Name order first so equal timestamps come out the same on every read.
	slices.SortFunc(tags, func(a, b domain.Tag) int {
		return strings.Compare(a.Name, b.Name)
	})
	return domain.NewTagHistory(tags), nil
}

// tagTime resolves a tag creation time; the zero time means unknown.
func (r *gitRepository) tagTime(ref *plumbing.Reference) time.Time {
	if tag, err := r.repo.TagObject(ref.Hash()); err == nil {
		return tag.Tagger.When
	}
	if commit, err := r.repo.CommitObject(ref.Hash()); err == nil {
		return commit.Author.When
	}
	r.logger.Debug("tag has no resolvable date", zap.String("tag", ref.Name().Short()))
	return time.Time{}
}

// ConfigureUser sets the git user configuration.
func (r *gitRepository) ConfigureUser(_ context.Context, name, email string) error {
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	cfg.User.Name = name
	cfg.User.Email = email
	return r.repo.Storer.SetConfig(cfg)
}

// AddRemote adds a remote, or repoints it when it already exists.
func (r *gitRepository) AddRemote(_ context.Context, name, remoteURL string, creds Credentials) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{remoteURL},
	})
	if errors.Is(err, git.ErrRemoteExists) {
		cfg, cfgErr := r.repo.Config()
		if cfgErr != nil {
			return fmt.Errorf("failed to get config: %w", cfgErr)
		}
		cfg.Remotes[name].URLs = []string{remoteURL}
		err = r.repo.Storer.SetConfig(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	r.auth[name] = creds.authMethod()
	return nil
}

// FetchBranch fetches a single branch into refs/remotes/<remote>/<branch>.
func (r *gitRepository) FetchBranch(ctx context.Context, remote, branch string) error {
	r.logger.Debug("fetching branch", zap.String("remote", remote), zap.String("branch", branch))
	err := r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		RefSpecs: []config.RefSpec{
			config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch)),
		},
		Auth: r.auth[remote],
		Tags: git.NoTags,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch %s/%s: %w", remote, branch, err)
	}
	return nil
}

// FetchTags fetches every tag of the remote without overwriting local tags.
func (r *gitRepository) FetchTags(ctx context.Context, remote string) error {
	r.logger.Debug("fetching tags", zap.String("remote", remote))
	err := r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{"refs/tags/*:refs/tags/*"},
		Auth:       r.auth[remote],
		Tags:       git.NoTags,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch tags from %s: %w", remote, err)
	}
	return nil
}

// Pull fast-forwards the checked out branch to <remote>/<branch>.
func (r *gitRepository) Pull(ctx context.Context, remote, branch string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	err = w.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Auth:          r.auth[remote],
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull %s/%s: %w", remote, branch, err)
	}
	return nil
}

// ResetHard performs a hard reset to the specified reference.
func (r *gitRepository) ResetHard(_ context.Context, ref string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	// Resolve the reference
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return fmt.Errorf("failed to resolve revision %s: %w", ref, err)
	}
	if err := r.bornHEAD(*hash); err != nil {
		return err
	}
	// Perform hard reset
	err = w.Reset(&git.ResetOptions{
		Commit: *hash,
		Mode:   git.HardReset,
	})
	if err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}

// bornHEAD creates the branch HEAD points at when it has no commits yet, since
// go-git cannot reset an unborn branch.
func (r *gitRepository) bornHEAD(hash plumbing.Hash) error {
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return nil
	}
	_, err = r.repo.Reference(head.Target(), false)
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil
	}
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(head.Target(), hash)); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", head.Target().Short(), err)
	}
	return nil
}

// PushBranch pushes a branch to the remote.
func (r *gitRepository) PushBranch(ctx context.Context, remote, branch string) error {
	return r.push(ctx, remote, false, branchRefSpec(branch))
}

// PushBranchForce pushes a branch to the remote with force.
func (r *gitRepository) PushBranchForce(ctx context.Context, remote, branch string) error {
	return r.push(ctx, remote, true, branchRefSpec(branch))
}

// ListTags returns the local tag names sorted by name.
func (r *gitRepository) ListTags(_ context.Context) ([]string, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	var names []string
	if err := refs.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// DeleteLocalTags deletes the given local tags.
func (r *gitRepository) DeleteLocalTags(_ context.Context, tags []string) error {
	for _, tag := range tags {
		if err := r.repo.DeleteTag(tag); err != nil {
			return fmt.Errorf("failed to delete tag %s: %w", tag, err)
		}
	}
	return nil
}

// DeleteRemoteTags deletes the given tags on the remote in a single push.
func (r *gitRepository) DeleteRemoteTags(ctx context.Context, remote string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	specs := make([]config.RefSpec, 0, len(tags))
	for _, tag := range tags {
		specs = append(specs, config.RefSpec(":refs/tags/"+tag))
	}
	return r.push(ctx, remote, false, specs...)
}

// PushTags pushes every local tag to the remote.
func (r *gitRepository) PushTags(ctx context.Context, remote string) error {
	return r.push(ctx, remote, false, config.RefSpec("refs/tags/*:refs/tags/*"))
}

func (r *gitRepository) push(ctx context.Context, remote string, force bool, specs ...config.RefSpec) error {
	r.logger.Debug("pushing",
		zap.String("remote", remote),
		zap.Bool("force", force),
		zap.Int("refspecs", len(specs)),
	)
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   specs,
		Auth:       r.auth[remote],
		Force:      force,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push to %s: %w", remote, err)
	}
	return nil
}

func branchRefSpec(branch string) config.RefSpec {
	return config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
}
