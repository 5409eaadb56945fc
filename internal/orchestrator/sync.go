package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/compozy/upstream-sync/internal/config"
	"github.com/compozy/upstream-sync/internal/domain"
	"github.com/compozy/upstream-sync/internal/repository"
	"github.com/compozy/upstream-sync/internal/service"
	"github.com/compozy/upstream-sync/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyUpstream is returned instead of force-resetting a target branch onto
// an upstream branch that has no commits.
var ErrEmptyUpstream = errors.New("upstream branch has no commits")

// SyncOptions contains the per-invocation switches of a sync run.
type SyncOptions struct {
	DryRun      bool
	KeepWorkdir bool
}

// SyncResult describes what a run decided and did.
type SyncResult struct {
	RunID      string
	Comparison *usecase.Comparison
	PublishTag domain.Optional[string]
	Summary    string
	Report     *domain.RunReport
}

// SyncOrchestrator clones both repositories, plans the sync, applies it to
// the target and publishes the matched tag.
type SyncOrchestrator struct {
	cfg          *config.Config
	cloner       repository.Cloner
	variableRepo repository.VariableRepository
	fsRepo       repository.FileSystemRepository
	outputs      service.OutputWriter
	summary      service.SummaryWriter
	annotator    *service.Annotator
	logger       *zap.Logger
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(
	cfg *config.Config,
	cloner repository.Cloner,
	variableRepo repository.VariableRepository,
	fsRepo repository.FileSystemRepository,
	outputs service.OutputWriter,
	summary service.SummaryWriter,
	annotator *service.Annotator,
	logger *zap.Logger,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		cfg:          cfg,
		cloner:       cloner,
		variableRepo: variableRepo,
		fsRepo:       fsRepo,
		outputs:      outputs,
		summary:      summary,
		annotator:    annotator,
		logger:       logger,
	}
}

// Execute runs the complete sync workflow.
func (o *SyncOrchestrator) Execute(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	runID := uuid.New().String()
	log := o.logger.With(zap.String("run_id", runID))
	result := &SyncResult{RunID: runID, PublishTag: domain.None[string]()}

	lock := repository.NewWorkdirLock(o.cfg.Workdir, LockTimeout)
	if err := lock.Lock(ctx); err != nil {
		return result, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("failed to release workdir lock", zap.Error(err))
		}
	}()

	runDir := filepath.Join(o.cfg.Workdir, RunDirName, runID)
	if !opts.KeepWorkdir {
		defer o.cleanup(runDir, log)
	}
	upstream, target, err := o.clone(ctx, runDir, log)
	if err != nil {
		return result, err
	}

	compare := &usecase.CompareRepositoriesUseCase{Upstream: upstream, Target: target}
	cmp, err := compare.Execute(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to compare repositories: %w", err)
	}
	result.Comparison = cmp
	log.Info("sync planned",
		zap.Stringer("commit_mode", cmp.CommitPlan.Mode()),
		zap.Int("new_commits", len(cmp.CommitPlan.NewCommits())),
		zap.Stringer("tag_mode", cmp.TagPlan.Mode()),
		zap.Strings("new_tags", cmp.TagPlan.NewTags()),
	)
	if cmp.CommitPlan.Mode() == domain.SyncModeForce && cmp.UpstreamHistory.IsEmpty() {
		return result, fmt.Errorf("refusing to reset %s: %w", o.cfg.TargetSyncBranch, ErrEmptyUpstream)
	}

	selectTag := &usecase.SelectPublishTagUseCase{Include: o.cfg.MatchTag, Excludes: o.cfg.ExcludePatterns()}
	result.PublishTag, err = selectTag.Execute(ctx, cmp.TagPlan)
	if err != nil {
		return result, err
	}
	if err := o.writeOutputs(cmp, result.PublishTag); err != nil {
		return result, err
	}
	result.Summary, err = o.writeSummary(ctx, cmp, result.PublishTag, opts.DryRun, log)
	if err != nil {
		return result, err
	}
	if opts.DryRun {
		log.Info("dry run, skipping git writes and variable publication")
		return result, nil
	}

	executor := NewStepExecutor(runID, log)
	addSyncSteps(executor, target, stepSettings{
		UpstreamURL:    o.cfg.UpstreamRepoURL,
		UpstreamBranch: o.cfg.UpstreamSyncBranch,
		UpstreamAuth:   repository.Credentials{Password: o.cfg.UpstreamRepoToken},
		TargetBranch:   o.cfg.TargetSyncBranch,
		GitUserName:    o.cfg.GitUserName,
		GitUserEmail:   o.cfg.GitUserEmail,
	}, cmp)
	result.Report = executor.Report()
	if err := executor.Execute(ctx); err != nil {
		return result, fmt.Errorf("sync failed: %w", err)
	}
	log.Info("sync completed", zap.Strings("steps", executor.Report().CompletedSteps()))

	if tag, ok := result.PublishTag.Get(); ok {
		o.publish(ctx, tag, log)
	}
	return result, nil
}

// clone fetches both working copies into runDir concurrently.
func (o *SyncOrchestrator) clone(
	ctx context.Context,
	runDir string,
	log *zap.Logger,
) (repository.GitExtendedRepository, repository.GitExtendedRepository, error) {
	var upstream, target repository.GitExtendedRepository
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		repo, err := o.cloner.Clone(gctx, repository.CloneOptions{
			URL:    o.cfg.UpstreamRepoURL,
			Branch: o.cfg.UpstreamSyncBranch,
			Dir:    filepath.Join(runDir, "upstream"),
			Auth:   repository.Credentials{Password: o.cfg.UpstreamRepoToken},
		})
		if err != nil {
			return fmt.Errorf("failed to clone upstream repository: %w", err)
		}
		upstream = repo
		return nil
	})
	g.Go(func() error {
		repo, err := o.cloner.Clone(gctx, repository.CloneOptions{
			URL:    o.cfg.TargetRepoURL(),
			Branch: o.cfg.TargetSyncBranch,
			Dir:    filepath.Join(runDir, "target"),
			Auth:   repository.Credentials{Password: o.cfg.TargetRepoToken},
		})
		if err != nil {
			return fmt.Errorf("failed to clone target repository: %w", err)
		}
		target = repo
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	log.Debug("repositories cloned", zap.String("dir", runDir))
	return upstream, target, nil
}

func (o *SyncOrchestrator) writeOutputs(cmp *usecase.Comparison, tag domain.Optional[string]) error {
	outputs := [][2]string{
		{"has_new_commits", strconv.FormatBool(cmp.CommitPlan.HasChanges())},
		{"has_match_tags", strconv.FormatBool(tag.IsPresent())},
	}
	if name, ok := tag.Get(); ok {
		outputs = append(outputs, [2]string{"tag", name})
		if v := domain.ParseTagVersion(name); v != nil {
			outputs = append(outputs,
				[2]string{"tag_version", v.Plain()},
				[2]string{"tag_prerelease", strconv.FormatBool(v.IsPrerelease())},
			)
		}
	}
	for _, kv := range outputs {
		if err := o.outputs.SetOutput(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to write outputs: %w", err)
		}
	}
	return nil
}

func (o *SyncOrchestrator) writeSummary(
	ctx context.Context,
	cmp *usecase.Comparison,
	tag domain.Optional[string],
	dryRun bool,
	log *zap.Logger,
) (string, error) {
	prepare := &usecase.PrepareSummaryUseCase{}
	text, err := prepare.Execute(ctx, usecase.SummaryInput{
		UpstreamURL:    repository.RedactURL(o.cfg.UpstreamRepoURL),
		UpstreamBranch: o.cfg.UpstreamSyncBranch,
		Target:         o.cfg.TargetOwner + "/" + o.cfg.TargetRepo,
		TargetBranch:   o.cfg.TargetSyncBranch,
		MatchTag:       o.cfg.MatchTag,
		VariableName:   o.cfg.VariableName,
		PublishEnabled: o.cfg.UpdateVariableToken != "",
		DryRun:         dryRun,
		Comparison:     cmp,
		PublishTag:     tag,
	})
	if err != nil {
		return "", fmt.Errorf("failed to prepare summary: %w", err)
	}
	if err := o.summary.Append(text); err != nil {
		log.Warn("failed to write step summary", zap.Error(err))
	}
	return text, nil
}

// publish upserts the matched tag. Failures never fail the run.
func (o *SyncOrchestrator) publish(ctx context.Context, tag string, log *zap.Logger) {
	publish := &usecase.PublishVariableUseCase{VariableRepo: o.variableRepo, Name: o.cfg.VariableName}
	created, err := publish.Execute(ctx, tag)
	switch {
	case errors.Is(err, repository.ErrGithubTokenRequired):
		log.Info("variable publication skipped, no token configured", zap.String("tag", tag))
	case err != nil:
		log.Warn("failed to publish tag", zap.String("variable", o.cfg.VariableName), zap.Error(err))
		o.annotator.Warning(fmt.Sprintf("failed to set %s to %s: %v", o.cfg.VariableName, tag, err))
	default:
		log.Info("tag published",
			zap.String("variable", o.cfg.VariableName),
			zap.String("tag", tag),
			zap.Bool("created", created),
		)
	}
}

func (o *SyncOrchestrator) cleanup(runDir string, log *zap.Logger) {
	if err := o.fsRepo.RemoveAll(runDir); err != nil {
		log.Warn("failed to remove run directory", zap.String("dir", runDir), zap.Error(err))
	}
}
