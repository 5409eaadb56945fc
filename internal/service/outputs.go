package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// OutputWriter records step outputs for later workflow steps.
type OutputWriter interface {
	SetOutput(key, value string) error
}

// stepOutputs appends outputs to the file named by GITHUB_OUTPUT.
type stepOutputs struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// NewStepOutputs creates an OutputWriter. An empty path only logs the outputs.
func NewStepOutputs(fs afero.Fs, path string, logger *zap.Logger) OutputWriter {
	return &stepOutputs{fs: fs, path: path, logger: logger}
}

// SetOutput appends key=value, or a delimited block for multiline values.
func (o *stepOutputs) SetOutput(key, value string) error {
	o.logger.Info("step output", zap.String("key", key), zap.String("value", value))
	if o.path == "" {
		return nil
	}
	f, err := o.fs.OpenFile(o.path, appendFlags, FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open outputs file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(formatOutput(key, value)); err != nil {
		return fmt.Errorf("failed to write output %s: %w", key, err)
	}
	return nil
}

func formatOutput(key, value string) string {
	if !strings.ContainsAny(value, "\r\n") {
		return fmt.Sprintf("%s=%s\n", key, value)
	}
	delimiter := "ghadelimiter_" + uuid.NewString()
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
}
