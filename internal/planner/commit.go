package planner

import (
	"slices"

	"github.com/compozy/upstream-sync/internal/domain"
)

// PlanCommitSync compares the upstream history with the target tip.
//
// Equal tips (including two empty branches) need nothing. A target tip found
// in the upstream history is fast-forwarded with the commits above it. Any
// other tip, including an empty target, is overwritten.
func PlanCommitSync(
	upstreamCommits []domain.Commit,
	upstreamLatest domain.Optional[string],
	targetLatest domain.Optional[string],
) CommitSyncPlan {
	if upstreamLatest.Equal(targetLatest) {
		return CommitSyncPlan{mode: domain.SyncModeNone}
	}
	idx := findCommitIndex(targetLatest, upstreamCommits)
	if idx == -1 {
		return CommitSyncPlan{mode: domain.SyncModeForce}
	}
	return CommitSyncPlan{
		mode:       domain.SyncModeNormal,
		newCommits: slices.Clone(upstreamCommits[:idx]),
	}
}

func findCommitIndex(id domain.Optional[string], commits []domain.Commit) int {
	want, ok := id.Get()
	if !ok {
		return -1
	}
	return slices.IndexFunc(commits, func(c domain.Commit) bool {
		return c.ID == want
	})
}
