package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/compozy/upstream-sync/internal/tagmatch"
	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
)

// ErrMissingInput is returned when a required input is not set.
var ErrMissingInput = errors.New("missing required input")

const (
	// ConfigName is the optional config file looked up in the working directory
	ConfigName = ".upstream-sync"
	// EnvPrefix is the tool-specific environment prefix
	EnvPrefix = "UPSTREAM_SYNC"
	// DefaultVariableName is the repository variable receiving the matched tag
	DefaultVariableName = "LATEST_TAG"
	// DefaultGitUserName is the identity used for git writes
	DefaultGitUserName = "GH_Action-Upstream_Sync"
	// DefaultGitUserEmail is the email used for git writes
	DefaultGitUserEmail = "powerforme-action@users.noreply.github.com"
)

type Config struct {
	UpstreamRepoURL     string `mapstructure:"upstream_repo_url"`
	UpstreamSyncBranch  string `mapstructure:"upstream_sync_branch"`
	UpstreamRepoToken   string `mapstructure:"upstream_repo_token"`
	TargetRepoToken     string `mapstructure:"target_repo_token"`
	TargetSyncBranch    string `mapstructure:"target_sync_branch"`
	TargetOwner         string `mapstructure:"target_owner"`
	TargetRepo          string `mapstructure:"target_repo"`
	MatchTag            string `mapstructure:"match_tag"`
	ExcludeTag          string `mapstructure:"exclude_tag"`
	UpdateVariableToken string `mapstructure:"update_variable_token"`
	VariableName        string `mapstructure:"variable_name"`
	Workdir             string `mapstructure:"workdir"`
	StepSummaryPath     string `mapstructure:"step_summary_path"`
	OutputPath          string `mapstructure:"output_path"`
	GitUserName         string `mapstructure:"git_user_name"`
	GitUserEmail        string `mapstructure:"git_user_email"`
	GithubAPIURL        string `mapstructure:"github_api_url"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		UpstreamSyncBranch: "main",
		TargetSyncBranch:   "main",
		MatchTag:           "*",
		VariableName:       DefaultVariableName,
		Workdir:            ".",
		GitUserName:        DefaultGitUserName,
		GitUserEmail:       DefaultGitUserEmail,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.UpstreamRepoURL == "" {
		return fmt.Errorf("%w: upstream_repo_url", ErrMissingInput)
	}
	if c.TargetRepoToken == "" {
		return fmt.Errorf("%w: target_repo_token", ErrMissingInput)
	}
	if err := ValidateGitHubOwnerRepo(c.TargetOwner, c.TargetRepo); err != nil {
		return fmt.Errorf("invalid target repository: %w", err)
	}
	if err := ValidateBranchName(c.UpstreamSyncBranch); err != nil {
		return fmt.Errorf("invalid upstream_sync_branch: %w", err)
	}
	if err := ValidateBranchName(c.TargetSyncBranch); err != nil {
		return fmt.Errorf("invalid target_sync_branch: %w", err)
	}
	if strings.TrimSpace(c.MatchTag) == "" {
		return fmt.Errorf("%w: match_tag", ErrMissingInput)
	}
	if err := tagmatch.ValidatePattern(c.MatchTag); err != nil {
		return fmt.Errorf("invalid match_tag: %w", err)
	}
	for _, p := range c.ExcludePatterns() {
		if err := tagmatch.ValidatePattern(p); err != nil {
			return fmt.Errorf("invalid exclude_tag: %w", err)
		}
	}
	// Variable token is optional and its format is left to the GitHub API
	if c.UpdateVariableToken != "" {
		if err := ValidateVariableName(c.VariableName); err != nil {
			return fmt.Errorf("invalid variable_name: %w", err)
		}
	}
	if c.Workdir == "" {
		return fmt.Errorf("workdir cannot be empty")
	}
	return nil
}

// TargetRepoURL returns the clone URL of the target repository.
func (c *Config) TargetRepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", c.TargetOwner, c.TargetRepo)
}

// ExcludePatterns splits exclude_tag on commas, dropping blanks.
func (c *Config) ExcludePatterns() []string {
	return tagmatch.SplitPatterns(c.ExcludeTag)
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// ValidateBranchName validates a git branch name.
func ValidateBranchName(branch string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if len(branch) > 255 {
		return fmt.Errorf("branch name too long: maximum 255 characters")
	}
	// Check for invalid characters in git branch names
	invalidChars := regexp.MustCompile(`[\s~^:?*\[\\]|\.\.|@\{|//`)
	if invalidChars.MatchString(branch) {
		return fmt.Errorf("branch name contains invalid characters: %s", branch)
	}
	if strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") ||
		strings.HasPrefix(branch, "-") || strings.HasSuffix(branch, ".lock") {
		return fmt.Errorf("invalid branch name format: %s", branch)
	}
	return nil
}

// ValidateVariableName validates a GitHub Actions variable name.
func ValidateVariableName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid variable name format: %s", name)
	}
	if strings.HasPrefix(strings.ToUpper(name), "GITHUB_") {
		return fmt.Errorf("variable name must not start with GITHUB_: %s", name)
	}
	return nil
}

// envNames returns the environment variables bound to key, in lookup order.
func envNames(key string, runnerVar string) []string {
	upper := strings.ToUpper(key)
	names := []string{"INPUT_" + upper, EnvPrefix + "_" + upper}
	if runnerVar != "" {
		names = append(names, runnerVar)
	}
	return names
}

var runnerVars = map[string]string{
	"workdir":           "GITHUB_WORKSPACE",
	"step_summary_path": "GITHUB_STEP_SUMMARY",
	"output_path":       "GITHUB_OUTPUT",
}

var keys = []string{
	"upstream_repo_url",
	"upstream_sync_branch",
	"upstream_repo_token",
	"target_repo_token",
	"target_sync_branch",
	"target_owner",
	"target_repo",
	"match_tag",
	"exclude_tag",
	"update_variable_token",
	"variable_name",
	"workdir",
	"step_summary_path",
	"output_path",
	"git_user_name",
	"git_user_email",
	"github_api_url",
}

// LoadConfig resolves configuration from the environment, an optional config
// file and defaults. An empty configPath looks for .upstream-sync.yaml in the
// current directory.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	// BindEnv allows multiple env vars - it will check them in order
	for _, key := range keys {
		args := append([]string{key}, envNames(key, runnerVars[key])...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("upstream_sync_branch", defaults.UpstreamSyncBranch)
	v.SetDefault("target_sync_branch", defaults.TargetSyncBranch)
	v.SetDefault("match_tag", defaults.MatchTag)
	v.SetDefault("variable_name", defaults.VariableName)
	v.SetDefault("workdir", defaults.Workdir)
	v.SetDefault("git_user_name", defaults.GitUserName)
	v.SetDefault("git_user_email", defaults.GitUserEmail)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	applyBlankDefaults(&config, defaults)
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// applyBlankDefaults restores defaults for inputs that are set but empty.
// Actions passes every declared input, so an unset one arrives as "".
func applyBlankDefaults(cfg, defaults *Config) {
	fill := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	fill(&cfg.UpstreamSyncBranch, defaults.UpstreamSyncBranch)
	fill(&cfg.TargetSyncBranch, defaults.TargetSyncBranch)
	fill(&cfg.MatchTag, defaults.MatchTag)
	fill(&cfg.VariableName, defaults.VariableName)
	fill(&cfg.Workdir, defaults.Workdir)
	fill(&cfg.GitUserName, defaults.GitUserName)
	fill(&cfg.GitUserEmail, defaults.GitUserEmail)
}

// populateRepositoryDefaults fills the target owner and name from the runner
// environment, falling back to the origin remote of the current directory.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.TargetOwner != "" && cfg.TargetRepo != "" {
		return nil
	}
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		owner, repo, ok := strings.Cut(slug, "/")
		if !ok {
			return fmt.Errorf("invalid GITHUB_REPOSITORY: %s", slug)
		}
		setIfEmpty(&cfg.TargetOwner, owner)
		setIfEmpty(&cfg.TargetRepo, repo)
		return nil
	}
	if owner, repo := os.Getenv("GITHUB_REPOSITORY_OWNER"), os.Getenv("GITHUB_REPOSITORY_NAME"); owner != "" && repo != "" {
		setIfEmpty(&cfg.TargetOwner, owner)
		setIfEmpty(&cfg.TargetRepo, repo)
		return nil
	}
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		// Validation reports the missing repository
		return nil
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	owner, name, err := parseGitRemoteURL(remote.Config().URLs[0])
	if err != nil {
		return err
	}
	setIfEmpty(&cfg.TargetOwner, owner)
	setIfEmpty(&cfg.TargetRepo, name)
	return nil
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// parseGitRemoteURL extracts owner and repository from https, ssh or path remotes.
func parseGitRemoteURL(remote string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(remote), ".git")
	if u, err := url.Parse(trimmed); err == nil && u.Scheme != "" && u.Host != "" {
		trimmed = u.Path
	} else if _, rest, ok := strings.Cut(trimmed, ":"); ok && strings.Contains(trimmed, "@") {
		trimmed = rest
	}
	parts := strings.Split(strings.Trim(strings.ReplaceAll(trimmed, "\\", "/"), "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot parse owner and repository from remote %s", remote)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
