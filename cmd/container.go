package cmd

import (
	"os"

	"github.com/compozy/upstream-sync/internal/config"
	"github.com/compozy/upstream-sync/internal/orchestrator"
	"github.com/compozy/upstream-sync/internal/repository"
	"github.com/compozy/upstream-sync/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg    *config.Config
	logger *zap.Logger
	orch   *orchestrator.SyncOrchestrator
}

// newContainer creates a new container with all the dependencies.
func newContainer(o rootOptions) (*container, error) {
	logger, err := newLogger(o.debug)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())

	orch := orchestrator.NewSyncOrchestrator(
		cfg,
		repository.NewGitCloner(logger),
		newVariableRepository(cfg, logger),
		fsRepo,
		service.NewStepOutputs(fsRepo, cfg.OutputPath, logger),
		service.NewStepSummary(fsRepo, cfg.StepSummaryPath),
		service.NewAnnotator(os.Stdout, inGithubActions()),
		logger,
	)
	return &container{cfg: cfg, logger: logger, orch: orch}, nil
}

// newVariableRepository returns the GitHub variable store, or the noop store when
// no token is set or the client cannot be built. Publication never fails a sync.
func newVariableRepository(cfg *config.Config, logger *zap.Logger) repository.VariableRepository {
	if cfg.UpdateVariableToken == "" {
		return repository.NewGithubNoopRepository(cfg.TargetOwner, cfg.TargetRepo)
	}
	repo, err := repository.NewGithubRepository(
		cfg.UpdateVariableToken, cfg.TargetOwner, cfg.TargetRepo, cfg.GithubAPIURL,
	)
	if err != nil {
		logger.Warn("Variable publication disabled", zap.Error(err))
		return repository.NewGithubNoopRepository(cfg.TargetOwner, cfg.TargetRepo)
	}
	return repo
}

// newLogger builds a JSON logger on the runner and a console logger elsewhere.
func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if inGithubActions() {
		zcfg = zap.NewProductionConfig()
	}
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zcfg.Build()
}

func inGithubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}
