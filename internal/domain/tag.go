package domain

import (
	"slices"
	"time"
)

// Tag is a named reference with its creation time. A zero CreatedAt means the
// timestamp could not be resolved.
type Tag struct {
	Name      string
	CreatedAt time.Time
}

// HasTimestamp reports whether the creation time is known.
func (t Tag) HasTimestamp() bool {
	return !t.CreatedAt.IsZero()
}

// SortTagsByCreation returns a copy of tags ordered oldest first. Tags without
// a timestamp rank as the oldest. Equal ranks keep their input order.
func SortTagsByCreation(tags []Tag) []Tag {
	sorted := slices.Clone(tags)
	slices.SortStableFunc(sorted, func(a, b Tag) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}

// TagHistory is the tag list of a repository, oldest first.
type TagHistory struct {
	Tags   []string
	Latest Optional[string]
}

// NewTagHistory sorts tags by creation time and records the newest one.
func NewTagHistory(tags []Tag) TagHistory {
	sorted := SortTagsByCreation(tags)
	names := make([]string, 0, len(sorted))
	for _, t := range sorted {
		names = append(names, t.Name)
	}
	if len(names) == 0 {
		return TagHistory{Tags: names, Latest: None[string]()}
	}
	return TagHistory{
		Tags:   names,
		Latest: Some(names[len(names)-1]),
	}
}

// IsEmpty reports whether the repository has no tags.
func (h TagHistory) IsEmpty() bool {
	return len(h.Tags) == 0
}
