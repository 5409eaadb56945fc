// Package planner decides how a target repository catches up with upstream.
//
// Planning is pure: it only compares commit and tag histories that were read
// beforehand and returns immutable plans. Git operations live elsewhere.
package planner

import (
	"slices"

	"github.com/compozy/upstream-sync/internal/domain"
)

// CommitSyncPlan describes how the target branch catches up with upstream.
type CommitSyncPlan struct {
	mode       domain.SyncMode
	newCommits []domain.Commit
}

// Mode returns the commit sync mode.
func (p CommitSyncPlan) Mode() domain.SyncMode {
	return p.mode
}

// NewCommits returns the upstream commits the target lacks, newest first.
// It is empty for the none and force modes.
func (p CommitSyncPlan) NewCommits() []domain.Commit {
	return slices.Clone(p.newCommits)
}

// HasChanges reports whether the target branch needs an update.
func (p CommitSyncPlan) HasChanges() bool {
	return p.mode != domain.SyncModeNone
}

// TagSyncPlan describes how the target tags catch up with upstream.
type TagSyncPlan struct {
	mode    domain.SyncMode
	newTags []string
}

// Mode returns the tag sync mode.
func (p TagSyncPlan) Mode() domain.SyncMode {
	return p.mode
}

// NewTags returns the upstream tags the target lacks, oldest first.
func (p TagSyncPlan) NewTags() []string {
	return slices.Clone(p.newTags)
}

// HasChanges reports whether the target tags need an update.
func (p TagSyncPlan) HasChanges() bool {
	return p.mode != domain.SyncModeNone
}
