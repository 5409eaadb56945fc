package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/compozy/upstream-sync/internal/planner"
	"github.com/compozy/upstream-sync/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Comparison holds both histories and the plans derived from them.
type Comparison struct {
	UpstreamHistory domain.History
	TargetHistory   domain.History
	UpstreamTags    domain.TagHistory
	TargetTags      domain.TagHistory
	CommitPlan      planner.CommitSyncPlan
	TagPlan         planner.TagSyncPlan
}

// CompareRepositoriesUseCase reads both working copies and plans the sync.
type CompareRepositoriesUseCase struct {
	Upstream repository.GitRepository
	Target   repository.GitRepository
}

// Execute reads the two repositories concurrently and plans only once both
// commit lists and both sorted tag lists are available.
func (uc *CompareRepositoriesUseCase) Execute(ctx context.Context) (*Comparison, error) {
	var cmp Comparison
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		history, tags, err := readRepository(gctx, uc.Upstream)
		if err != nil {
			return fmt.Errorf("failed to read upstream repository: %w", err)
		}
		cmp.UpstreamHistory, cmp.UpstreamTags = history, tags
		return nil
	})
	g.Go(func() error {
		history, tags, err := readRepository(gctx, uc.Target)
		if err != nil {
			return fmt.Errorf("failed to read target repository: %w", err)
		}
		cmp.TargetHistory, cmp.TargetTags = history, tags
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	cmp.CommitPlan = planner.PlanCommitSync(
		cmp.UpstreamHistory.Commits,
		cmp.UpstreamHistory.Latest,
		cmp.TargetHistory.Latest,
	)
	cmp.TagPlan = planner.PlanTagSync(
		cmp.UpstreamTags.Tags,
		cmp.TargetTags.Tags,
		cmp.UpstreamTags.Latest,
		cmp.TargetTags.Latest,
	)
	return &cmp, nil
}

func readRepository(ctx context.Context, repo repository.GitRepository) (domain.History, domain.TagHistory, error) {
	history, err := repo.History(ctx)
	if err != nil {
		return domain.History{}, domain.TagHistory{}, fmt.Errorf("failed to read commits: %w", err)
	}
	tags, err := repo.TagHistory(ctx)
	if err != nil {
		return domain.History{}, domain.TagHistory{}, fmt.Errorf("failed to read tags: %w", err)
	}
	return history, tags, nil
}
