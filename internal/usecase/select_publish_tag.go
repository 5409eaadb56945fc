package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/compozy/upstream-sync/internal/planner"
	"github.com/compozy/upstream-sync/internal/tagmatch"
)

// SelectPublishTagUseCase picks the newest new tag eligible for publication.
type SelectPublishTagUseCase struct {
	Include  string
	Excludes []string
}

// Execute returns the selected tag, or none when no new tag matches.
func (uc *SelectPublishTagUseCase) Execute(_ context.Context, plan planner.TagSyncPlan) (domain.Optional[string], error) {
	tag, err := tagmatch.SelectPublishTag(plan.NewTags(), uc.Include, uc.Excludes)
	if err != nil {
		return domain.None[string](), fmt.Errorf("failed to match tags: %w", err)
	}
	return tag, nil
}
