package orchestrator

import (
	"context"

	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/compozy/upstream-sync/internal/repository"
	"github.com/compozy/upstream-sync/internal/usecase"
)

// stepSettings carries what the git steps need besides the plans.
type stepSettings struct {
	UpstreamURL    string
	UpstreamBranch string
	UpstreamAuth   repository.Credentials
	TargetBranch   string
	GitUserName    string
	GitUserEmail   string
}

// addSyncSteps queues the git operations for cmp on the target working copy:
// identity and upstream remote first, then the commit sync, then the tag sync.
// Nothing is queued when both plans are up to date.
func addSyncSteps(
	e *StepExecutor,
	target repository.GitExtendedRepository,
	s stepSettings,
	cmp *usecase.Comparison,
) {
	commitMode := cmp.CommitPlan.Mode()
	tagMode := cmp.TagPlan.Mode()
	if commitMode == domain.SyncModeNone && tagMode == domain.SyncModeNone {
		return
	}
	e.AddStep(Step{
		Name: "Configure git identity",
		Type: domain.StepTypeConfigureUser,
		Execute: func(ctx context.Context) error {
			return target.ConfigureUser(ctx, s.GitUserName, s.GitUserEmail)
		},
	})
	e.AddStep(Step{
		Name: "Add upstream remote",
		Type: domain.StepTypeAddRemote,
		Execute: func(ctx context.Context) error {
			return target.AddRemote(ctx, UpstreamRemote, s.UpstreamURL, s.UpstreamAuth)
		},
	})
	e.AddStep(Step{
		Name: "Fetch upstream branch",
		Type: domain.StepTypeFetchBranch,
		Execute: func(ctx context.Context) error {
			return target.FetchBranch(ctx, UpstreamRemote, s.UpstreamBranch)
		},
	})
	addCommitSteps(e, target, s, commitMode)
	addTagSteps(e, target, tagMode)
}

func addCommitSteps(e *StepExecutor, target repository.GitExtendedRepository, s stepSettings, mode domain.SyncMode) {
	switch mode {
	case domain.SyncModeNormal:
		e.AddStep(Step{
			Name: "Pull upstream commits",
			Type: domain.StepTypePull,
			Execute: func(ctx context.Context) error {
				return target.Pull(ctx, UpstreamRemote, s.UpstreamBranch)
			},
		})
		e.AddStep(Step{
			Name: "Push target branch",
			Type: domain.StepTypePushBranch,
			Execute: func(ctx context.Context) error {
				return target.PushBranch(ctx, OriginRemote, s.TargetBranch)
			},
		})
	case domain.SyncModeForce:
		e.AddStep(Step{
			Name: "Reset target branch to upstream",
			Type: domain.StepTypeResetHard,
			Execute: func(ctx context.Context) error {
				return target.ResetHard(ctx, UpstreamRemote+"/"+s.UpstreamBranch)
			},
		})
		e.AddStep(Step{
			Name: "Force push target branch",
			Type: domain.StepTypePushBranch,
			Execute: func(ctx context.Context) error {
				return target.PushBranchForce(ctx, OriginRemote, s.TargetBranch)
			},
		})
	}
}

func addTagSteps(e *StepExecutor, target repository.GitExtendedRepository, mode domain.SyncMode) {
	if mode == domain.SyncModeNone {
		return
	}
	if mode == domain.SyncModeForce {
		var localTags []string
		e.AddStep(Step{
			Name: "Delete local tags",
			Type: domain.StepTypeDeleteLocalTags,
			Execute: func(ctx context.Context) error {
				tags, err := target.ListTags(ctx)
				if err != nil {
					return err
				}
				localTags = tags
				return target.DeleteLocalTags(ctx, tags)
			},
		})
		e.AddStep(Step{
			Name: "Delete remote tags",
			Type: domain.StepTypeDeleteRemoteTags,
			Execute: func(ctx context.Context) error {
				return target.DeleteRemoteTags(ctx, OriginRemote, localTags)
			},
		})
	}
	e.AddStep(Step{
		Name: "Fetch upstream tags",
		Type: domain.StepTypeFetchTags,
		Execute: func(ctx context.Context) error {
			return target.FetchTags(ctx, UpstreamRemote)
		},
	})
	e.AddStep(Step{
		Name: "Push tags",
		Type: domain.StepTypePushTags,
		Execute: func(ctx context.Context) error {
			return target.PushTags(ctx, OriginRemote)
		},
	})
}
