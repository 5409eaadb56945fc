package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem for runner files (outputs, step
// summary) and per-run clone directories.
type FileSystemRepository interface {
	afero.Fs
}
