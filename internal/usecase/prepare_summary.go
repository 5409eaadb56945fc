package usecase

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/compozy/upstream-sync/internal/domain"
)

const summaryTemplate = `## Upstream Sync{{ if .DryRun }} (dry run){{ end }}

| | Repository | Branch |
| --- | --- | --- |
| Upstream | {{ .UpstreamURL }} | {{ .UpstreamBranch }} |
| Target | {{ .Target }} | {{ .TargetBranch }} |

### Commits: {{ .CommitMode }}

{{ .CommitSummary }}
{{ range .NewCommits }}- ` + "`{{ .ShortID }}`" + ` {{ .Message }}
{{ end }}
### Tags: {{ .TagMode }}

{{ .TagSummary }}
{{ range .NewTags }}- ` + "`{{ . }}`" + `
{{ end }}
### Variable

{{ .VariableSummary }}
`

// SummaryInput describes a run for the step summary.
type SummaryInput struct {
	UpstreamURL    string
	UpstreamBranch string
	Target         string
	TargetBranch   string
	MatchTag       string
	VariableName   string
	PublishEnabled bool
	DryRun         bool
	Comparison     *Comparison
	PublishTag     domain.Optional[string]
}

type summaryData struct {
	UpstreamURL     string
	UpstreamBranch  string
	Target          string
	TargetBranch    string
	DryRun          bool
	CommitMode      string
	CommitSummary   string
	NewCommits      []domain.Commit
	TagMode         string
	TagSummary      string
	NewTags         []string
	VariableSummary string
}

// PrepareSummaryUseCase renders the markdown step summary.
type PrepareSummaryUseCase struct {
}

// Execute renders the summary for in.
func (uc *PrepareSummaryUseCase) Execute(_ context.Context, in SummaryInput) (string, error) {
	if in.Comparison == nil {
		return "", fmt.Errorf("comparison cannot be nil")
	}
	cmp := in.Comparison
	data := summaryData{
		UpstreamURL:     in.UpstreamURL,
		UpstreamBranch:  in.UpstreamBranch,
		Target:          in.Target,
		TargetBranch:    in.TargetBranch,
		DryRun:          in.DryRun,
		CommitMode:      cmp.CommitPlan.Mode().String(),
		CommitSummary:   commitSummary(cmp),
		NewCommits:      cmp.CommitPlan.NewCommits(),
		TagMode:         cmp.TagPlan.Mode().String(),
		TagSummary:      tagSummary(cmp),
		NewTags:         cmp.TagPlan.NewTags(),
		VariableSummary: variableSummary(in),
	}
	tmpl, err := template.New("summary").Option("missingkey=error").Parse(summaryTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func commitSummary(cmp *Comparison) string {
	switch cmp.CommitPlan.Mode() {
	case domain.SyncModeNormal:
		return fmt.Sprintf("%d new commit(s) from upstream.", len(cmp.CommitPlan.NewCommits()))
	case domain.SyncModeForce:
		return fmt.Sprintf("Target branch is reset to upstream `%s`.",
			domain.Commit{ID: cmp.UpstreamHistory.Latest.OrElse("")}.ShortID())
	default:
		return "Target branch is up to date."
	}
}

func tagSummary(cmp *Comparison) string {
	switch cmp.TagPlan.Mode() {
	case domain.SyncModeNormal:
		return fmt.Sprintf("%d new tag(s) from upstream.", len(cmp.TagPlan.NewTags()))
	case domain.SyncModeForce:
		return fmt.Sprintf("Target tags are replaced with the %d upstream tag(s).", len(cmp.UpstreamTags.Tags))
	default:
		return "Target tags are up to date."
	}
}

func variableSummary(in SummaryInput) string {
	tag, ok := in.PublishTag.Get()
	switch {
	case !ok:
		return fmt.Sprintf("No new tag matches `%s`.", in.MatchTag)
	case !in.PublishEnabled:
		return fmt.Sprintf("Matched `%s`; variable publication is disabled.", tag)
	default:
		return fmt.Sprintf("`%s` receives `%s`.", in.VariableName, tag)
	}
}
