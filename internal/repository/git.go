package repository

import (
	"context"

	"github.com/compozy/upstream-sync/internal/domain"
)

// HistoryReader reads the commit history of the checked out branch.
type HistoryReader interface {
	History(ctx context.Context) (domain.History, error)
}

// TagReader reads all tags ordered by creation time.
type TagReader interface {
	TagHistory(ctx context.Context) (domain.TagHistory, error)
}

// GitRepository defines the read side of a local working copy.
type GitRepository interface {
	HistoryReader
	TagReader
	Path() string
}
