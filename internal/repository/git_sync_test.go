package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const syncBranch = "main"

func initMainRepo(t *testing.T, bare bool) (string, *git.Repository) {
	dir := t.TempDir()
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		Bare:        bare,
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(syncBranch)},
	})
	require.NoError(t, err)
	return dir, repo
}

// pushSeed pushes the main branch and all tags of a seed repository to dir.
func pushSeed(t *testing.T, repo *git.Repository, name, dir string) {
	_, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{dir}})
	if err != nil {
		require.ErrorIs(t, err, git.ErrRemoteExists)
	}
	err = repo.Push(&git.PushOptions{
		RemoteName: name,
		RefSpecs: []gitconfig.RefSpec{
			"+refs/heads/main:refs/heads/main",
			"refs/tags/*:refs/tags/*",
		},
	})
	if err != nil {
		require.ErrorIs(t, err, git.NoErrAlreadyUpToDate)
	}
}

func cloneTarget(t *testing.T, url string) GitExtendedRepository {
	repo, err := NewGitCloner(zap.NewNop()).Clone(context.Background(), CloneOptions{
		URL:    url,
		Branch: syncBranch,
		Dir:    filepath.Join(t.TempDir(), "target"),
	})
	require.NoError(t, err)
	return repo
}

func branchTip(t *testing.T, dir string) string {
	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(syncBranch), true)
	require.NoError(t, err)
	return ref.Hash().String()
}

func remoteTagNames(t *testing.T, dir string) []string {
	gitRepo, err := OpenGitRepository(dir, zap.NewNop())
	require.NoError(t, err)
	names, err := gitRepo.ListTags(context.Background())
	require.NoError(t, err)
	return names
}

func TestGitCloner_Clone(t *testing.T) {
	ctx := context.Background()
	t.Run("Should clone the branch with its tags", func(t *testing.T) {
		remoteDir, _ := initMainRepo(t, true)
		seedDir, seed := initMainRepo(t, false)
		first := commitFile(t, seedDir, seed, "a.txt", "first", baseTime)
		second := commitFile(t, seedDir, seed, "b.txt", "second", baseTime.Add(time.Hour))
		_, err := seed.CreateTag("v1.0.0", first, nil)
		require.NoError(t, err)
		pushSeed(t, seed, "remote", remoteDir)

		clone := cloneTarget(t, remoteDir)
		history, err := clone.History(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{second.String(), first.String()},
			[]string{history.Commits[0].ID, history.Commits[1].ID})
		tags, err := clone.TagHistory(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.0.0"}, tags.Tags)
	})
	t.Run("Should initialize a local copy of an empty remote", func(t *testing.T) {
		remoteDir, _ := initMainRepo(t, true)
		clone := cloneTarget(t, remoteDir)
		history, err := clone.History(ctx)
		require.NoError(t, err)
		assert.True(t, history.IsEmpty())
		tags, err := clone.TagHistory(ctx)
		require.NoError(t, err)
		assert.True(t, tags.IsEmpty())
	})
	t.Run("Should fail for a missing remote", func(t *testing.T) {
		_, err := NewGitCloner(zap.NewNop()).Clone(ctx, CloneOptions{
			URL:    filepath.Join(t.TempDir(), "missing"),
			Branch: syncBranch,
			Dir:    filepath.Join(t.TempDir(), "target"),
		})
		assert.ErrorContains(t, err, "failed to clone")
	})
}

func TestGitRepository_SyncAgainstRemotes(t *testing.T) {
	ctx := context.Background()
	t.Run("Should fast-forward the target branch and add new tags", func(t *testing.T) {
		upstreamDir, _ := initMainRepo(t, true)
		targetDir, _ := initMainRepo(t, true)
		seedDir, seed := initMainRepo(t, false)
		first := commitFile(t, seedDir, seed, "a.txt", "first", baseTime)
		_, err := seed.CreateTag("v1.0.0", first, nil)
		require.NoError(t, err)
		pushSeed(t, seed, "upstream", upstreamDir)
		pushSeed(t, seed, "target", targetDir)
		second := commitFile(t, seedDir, seed, "b.txt", "second", baseTime.Add(time.Hour))
		_, err = seed.CreateTag("v1.1.0", second, nil)
		require.NoError(t, err)
		pushSeed(t, seed, "upstream", upstreamDir)

		clone := cloneTarget(t, targetDir)
		require.NoError(t, clone.ConfigureUser(ctx, "Sync Bot", "sync@example.com"))
		require.NoError(t, clone.AddRemote(ctx, "upstream", upstreamDir, Credentials{}))
		require.NoError(t, clone.FetchBranch(ctx, "upstream", syncBranch))
		require.NoError(t, clone.Pull(ctx, "upstream", syncBranch))
		require.NoError(t, clone.PushBranch(ctx, "origin", syncBranch))
		require.NoError(t, clone.FetchTags(ctx, "upstream"))
		require.NoError(t, clone.PushTags(ctx, "origin"))

		assert.Equal(t, second.String(), branchTip(t, targetDir))
		assert.Equal(t, []string{"v1.0.0", "v1.1.0"}, remoteTagNames(t, targetDir))
	})
	t.Run("Should force the target onto a diverged upstream and replace its tags", func(t *testing.T) {
		upstreamDir, _ := initMainRepo(t, true)
		targetDir, _ := initMainRepo(t, true)
		upstreamSeedDir, upstreamSeed := initMainRepo(t, false)
		upstreamTip := commitFile(t, upstreamSeedDir, upstreamSeed, "up.txt", "upstream", baseTime)
		_, err := upstreamSeed.CreateTag("v2.0.0", upstreamTip, nil)
		require.NoError(t, err)
		pushSeed(t, upstreamSeed, "upstream", upstreamDir)
		targetSeedDir, targetSeed := initMainRepo(t, false)
		targetTip := commitFile(t, targetSeedDir, targetSeed, "local.txt", "local", baseTime)
		_, err = targetSeed.CreateTag("old", targetTip, nil)
		require.NoError(t, err)
		pushSeed(t, targetSeed, "target", targetDir)

		clone := cloneTarget(t, targetDir)
		require.NoError(t, clone.AddRemote(ctx, "upstream", upstreamDir, Credentials{}))
		require.NoError(t, clone.FetchBranch(ctx, "upstream", syncBranch))
		require.NoError(t, clone.ResetHard(ctx, "upstream/main"))
		assert.Error(t, clone.PushBranch(ctx, "origin", syncBranch))
		require.NoError(t, clone.PushBranchForce(ctx, "origin", syncBranch))
		tags, err := clone.ListTags(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"old"}, tags)
		require.NoError(t, clone.DeleteLocalTags(ctx, tags))
		require.NoError(t, clone.DeleteRemoteTags(ctx, "origin", tags))
		require.NoError(t, clone.FetchTags(ctx, "upstream"))
		require.NoError(t, clone.PushTags(ctx, "origin"))

		assert.Equal(t, upstreamTip.String(), branchTip(t, targetDir))
		assert.Equal(t, []string{"v2.0.0"}, remoteTagNames(t, targetDir))
	})
	t.Run("Should populate an empty target from upstream", func(t *testing.T) {
		upstreamDir, _ := initMainRepo(t, true)
		targetDir, _ := initMainRepo(t, true)
		seedDir, seed := initMainRepo(t, false)
		first := commitFile(t, seedDir, seed, "a.txt", "first", baseTime)
		second := commitFile(t, seedDir, seed, "b.txt", "second", baseTime.Add(time.Hour))
		_, err := seed.CreateTag("v1.0.0", first, nil)
		require.NoError(t, err)
		_, err = seed.CreateTag("v1.1.0", second, nil)
		require.NoError(t, err)
		pushSeed(t, seed, "upstream", upstreamDir)

		clone := cloneTarget(t, targetDir)
		require.NoError(t, clone.AddRemote(ctx, "upstream", upstreamDir, Credentials{}))
		require.NoError(t, clone.FetchBranch(ctx, "upstream", syncBranch))
		require.NoError(t, clone.ResetHard(ctx, "upstream/main"))
		require.NoError(t, clone.PushBranchForce(ctx, "origin", syncBranch))
		require.NoError(t, clone.FetchTags(ctx, "upstream"))
		require.NoError(t, clone.PushTags(ctx, "origin"))

		assert.Equal(t, second.String(), branchTip(t, targetDir))
		assert.Equal(t, []string{"v1.0.0", "v1.1.0"}, remoteTagNames(t, targetDir))
		history, err := clone.History(ctx)
		require.NoError(t, err)
		latest, ok := history.Latest.Get()
		assert.True(t, ok)
		assert.Equal(t, second.String(), latest)
	})
	t.Run("Should treat an up to date fetch and push as success", func(t *testing.T) {
		remoteDir, _ := initMainRepo(t, true)
		seedDir, seed := initMainRepo(t, false)
		commitFile(t, seedDir, seed, "a.txt", "first", baseTime)
		pushSeed(t, seed, "remote", remoteDir)

		clone := cloneTarget(t, remoteDir)
		require.NoError(t, clone.FetchBranch(ctx, "origin", syncBranch))
		require.NoError(t, clone.FetchTags(ctx, "origin"))
		require.NoError(t, clone.Pull(ctx, "origin", syncBranch))
		require.NoError(t, clone.PushBranch(ctx, "origin", syncBranch))
		require.NoError(t, clone.PushTags(ctx, "origin"))
	})
}
