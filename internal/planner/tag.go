package planner

import (
	"slices"

	"github.com/compozy/upstream-sync/internal/domain"
)

// PlanTagSync compares the upstream and target tag lists, both ordered
// oldest first. The first matching rule wins:
//
//	both empty                        none
//	target empty                      force, all upstream tags
//	upstream empty                    force, nothing to add
//	same latest tag                   none
//	target latest missing upstream    force, all upstream tags
//	target latest found upstream      normal, upstream tags after it
func PlanTagSync(
	upstreamTags, targetTags []string,
	upstreamLatest, targetLatest domain.Optional[string],
) TagSyncPlan {
	switch {
	case len(upstreamTags) == 0 && len(targetTags) == 0:
		return TagSyncPlan{mode: domain.SyncModeNone}
	case len(targetTags) == 0:
		return TagSyncPlan{mode: domain.SyncModeForce, newTags: slices.Clone(upstreamTags)}
	case len(upstreamTags) == 0:
		return TagSyncPlan{mode: domain.SyncModeForce}
	case upstreamLatest.Equal(targetLatest):
		return TagSyncPlan{mode: domain.SyncModeNone}
	}
	latest, ok := targetLatest.Get()
	if !ok {
		return TagSyncPlan{mode: domain.SyncModeForce, newTags: slices.Clone(upstreamTags)}
	}
	idx := FindTagIndex(latest, upstreamTags)
	if idx == -1 {
		return TagSyncPlan{mode: domain.SyncModeForce, newTags: slices.Clone(upstreamTags)}
	}
	return TagSyncPlan{
		mode:    domain.SyncModeNormal,
		newTags: slices.Clone(upstreamTags[idx+1:]),
	}
}

// FindTagIndex returns the position of name in tags, or -1. Names are compared
// exactly, so a renamed tag looks like a deleted one.
func FindTagIndex(name string, tags []string) int {
	return slices.Index(tags, name)
}
