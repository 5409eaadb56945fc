package service

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStepOutputs(t *testing.T) {
	t.Run("Should append key value lines", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		outputs := NewStepOutputs(fs, "/runner/output", zap.NewNop())
		require.NoError(t, outputs.SetOutput("has_new_commits", "true"))
		require.NoError(t, outputs.SetOutput("tag", "v1.2.0"))
		content, err := afero.ReadFile(fs, "/runner/output")
		require.NoError(t, err)
		assert.Equal(t, "has_new_commits=true\ntag=v1.2.0\n", string(content))
	})
	t.Run("Should use a delimiter for multiline values", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		outputs := NewStepOutputs(fs, "/runner/output", zap.NewNop())
		require.NoError(t, outputs.SetOutput("notes", "line one\nline two"))
		content, err := afero.ReadFile(fs, "/runner/output")
		require.NoError(t, err)
		pattern := regexp.MustCompile(`^notes<<(ghadelimiter_[0-9a-f-]{36})\nline one\nline two\n(ghadelimiter_[0-9a-f-]{36})\n$`)
		match := pattern.FindStringSubmatch(string(content))
		require.Len(t, match, 3)
		assert.Equal(t, match[1], match[2])
	})
	t.Run("Should only log without an outputs path", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		outputs := NewStepOutputs(fs, "", zap.NewNop())
		assert.NoError(t, outputs.SetOutput("tag", "v1.0.0"))
	})
	t.Run("Should fail on a read-only filesystem", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		outputs := NewStepOutputs(fs, "/runner/output", zap.NewNop())
		err := outputs.SetOutput("tag", "v1.0.0")
		assert.ErrorContains(t, err, "failed to open outputs file")
	})
}

func TestStepSummary(t *testing.T) {
	t.Run("Should append to the summary file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/runner/summary.md", []byte("# Earlier step\n"), FilePermissions))
		summary := NewStepSummary(fs, "/runner/summary.md")
		require.NoError(t, summary.Append("## Upstream Sync\n"))
		content, err := afero.ReadFile(fs, "/runner/summary.md")
		require.NoError(t, err)
		assert.Equal(t, "# Earlier step\n## Upstream Sync\n", string(content))
	})
	t.Run("Should be a silent no-op without a path", func(t *testing.T) {
		summary := NewStepSummary(afero.NewReadOnlyFs(afero.NewMemMapFs()), "")
		assert.NoError(t, summary.Append("ignored"))
	})
}

func TestAnnotator(t *testing.T) {
	t.Run("Should emit escaped workflow commands", func(t *testing.T) {
		var buf bytes.Buffer
		a := NewAnnotator(&buf, true)
		a.Warning("variable update failed: 100% broken\nretry later")
		a.Error("push rejected")
		assert.Equal(t,
			"::warning::variable update failed: 100%25 broken%0Aretry later\n::error::push rejected\n",
			buf.String(),
		)
	})
	t.Run("Should stay silent when disabled", func(t *testing.T) {
		var buf bytes.Buffer
		NewAnnotator(&buf, false).Warning("hidden")
		assert.Empty(t, buf.String())
	})
}
