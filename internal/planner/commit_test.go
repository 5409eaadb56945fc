package planner

import (
	"fmt"
	"testing"

	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/stretchr/testify/assert"
)

func commits(ids ...string) []domain.Commit {
	out := make([]domain.Commit, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Commit{ID: id, Message: "commit " + id})
	}
	return out
}

func TestPlanCommitSync(t *testing.T) {
	t.Run("Should plan nothing when tips are equal", func(t *testing.T) {
		upstream := commits("c3", "c2", "c1")
		plan := PlanCommitSync(upstream, domain.Some("c3"), domain.Some("c3"))
		assert.Equal(t, domain.SyncModeNone, plan.Mode())
		assert.Empty(t, plan.NewCommits())
		assert.False(t, plan.HasChanges())
	})
	t.Run("Should plan nothing when both branches are empty", func(t *testing.T) {
		plan := PlanCommitSync(nil, domain.None[string](), domain.None[string]())
		assert.Equal(t, domain.SyncModeNone, plan.Mode())
		assert.Empty(t, plan.NewCommits())
	})
	t.Run("Should list commits above the target tip", func(t *testing.T) {
		upstream := commits("c3", "c2", "c1")
		plan := PlanCommitSync(upstream, domain.Some("c3"), domain.Some("c1"))
		assert.Equal(t, domain.SyncModeNormal, plan.Mode())
		assert.Equal(t, commits("c3", "c2"), plan.NewCommits())
		assert.True(t, plan.HasChanges())
	})
	t.Run("Should force when the target tip is not upstream", func(t *testing.T) {
		upstream := commits("c3", "c2", "c1")
		plan := PlanCommitSync(upstream, domain.Some("c3"), domain.Some("cX"))
		assert.Equal(t, domain.SyncModeForce, plan.Mode())
		assert.Empty(t, plan.NewCommits())
	})
	t.Run("Should force the initial sync of an empty target", func(t *testing.T) {
		upstream := commits("c2", "c1")
		plan := PlanCommitSync(upstream, domain.Some("c2"), domain.None[string]())
		assert.Equal(t, domain.SyncModeForce, plan.Mode())
	})
	t.Run("Should force when upstream is empty but the target has commits", func(t *testing.T) {
		plan := PlanCommitSync(nil, domain.None[string](), domain.Some("c1"))
		assert.Equal(t, domain.SyncModeForce, plan.Mode())
		assert.Empty(t, plan.NewCommits())
	})
	t.Run("Should report normal with no commits when the tip is the newest entry", func(t *testing.T) {
		upstream := commits("c2", "c1")
		plan := PlanCommitSync(upstream, domain.Some("c9"), domain.Some("c2"))
		assert.Equal(t, domain.SyncModeNormal, plan.Mode())
		assert.Empty(t, plan.NewCommits())
	})
	t.Run("Should return the exact prefix for every tip position", func(t *testing.T) {
		upstream := commits("c5", "c4", "c3", "c2", "c1")
		for idx := 1; idx < len(upstream); idx++ {
			tip := upstream[idx].ID
			t.Run(fmt.Sprintf("tip %s", tip), func(t *testing.T) {
				plan := PlanCommitSync(upstream, domain.Some("c5"), domain.Some(tip))
				assert.Equal(t, domain.SyncModeNormal, plan.Mode())
				assert.Equal(t, upstream[:idx], plan.NewCommits())
			})
		}
	})
	t.Run("Should produce identical plans for unchanged inputs", func(t *testing.T) {
		upstream := commits("c3", "c2", "c1")
		first := PlanCommitSync(upstream, domain.Some("c3"), domain.Some("c2"))
		second := PlanCommitSync(upstream, domain.Some("c3"), domain.Some("c2"))
		assert.Equal(t, first, second)
	})
	t.Run("Should not share memory with the input history", func(t *testing.T) {
		upstream := commits("c3", "c2", "c1")
		plan := PlanCommitSync(upstream, domain.Some("c3"), domain.Some("c1"))
		upstream[0].ID = "mutated"
		got := plan.NewCommits()
		assert.Equal(t, "c3", got[0].ID)
		got[1].ID = "mutated"
		assert.Equal(t, "c2", plan.NewCommits()[1].ID)
	})
}
