package service

import (
	"fmt"

	"github.com/spf13/afero"
)

// SummaryWriter appends human-readable text to the run summary.
type SummaryWriter interface {
	Append(text string) error
}

type stepSummary struct {
	fs   afero.Fs
	path string
}

// NewStepSummary creates a SummaryWriter. Without a path every append is a
// silent no-op.
func NewStepSummary(fs afero.Fs, path string) SummaryWriter {
	return &stepSummary{fs: fs, path: path}
}

func (s *stepSummary) Append(text string) error {
	if s.path == "" {
		return nil
	}
	f, err := s.fs.OpenFile(s.path, appendFlags, FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open step summary: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to write step summary: %w", err)
	}
	return nil
}
