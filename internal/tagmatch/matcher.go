// Package tagmatch selects the tag to publish from a list of new tags.
package tagmatch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/compozy/upstream-sync/internal/domain"
)

// Matcher holds an include pattern and the exclude patterns that override it.
// Patterns use shell glob syntax: *, ?, [classes] negated with ! or ^, and
// {a,b} alternatives.
type Matcher struct {
	include  string
	excludes []string
}

// NewMatcher validates the patterns and returns a Matcher.
func NewMatcher(include string, excludes []string) (*Matcher, error) {
	include = strings.TrimSpace(include)
	if include == "" {
		return nil, fmt.Errorf("include pattern cannot be empty")
	}
	if err := ValidatePattern(include); err != nil {
		return nil, err
	}
	cleaned := make([]string, 0, len(excludes))
	for _, p := range excludes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := ValidatePattern(p); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, p)
	}
	return &Matcher{include: include, excludes: cleaned}, nil
}

// ValidatePattern reports a malformed glob pattern.
func ValidatePattern(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return nil
}

// SplitPatterns splits a comma-separated pattern list, dropping blanks.
func SplitPatterns(list string) []string {
	var patterns []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// Excluded reports whether tag matches any exclude pattern.
func (m *Matcher) Excluded(tag string) bool {
	return slices.ContainsFunc(m.excludes, func(p string) bool {
		return matches(p, tag)
	})
}

// Included reports whether tag matches the include pattern.
func (m *Matcher) Included(tag string) bool {
	return matches(m.include, tag)
}

// Select returns the newest tag that is not excluded and matches the include
// pattern. newTags is ordered oldest first.
func (m *Matcher) Select(newTags []string) domain.Optional[string] {
	for i := len(newTags) - 1; i >= 0; i-- {
		tag := newTags[i]
		if m.Excluded(tag) {
			continue
		}
		if m.Included(tag) {
			return domain.Some(tag)
		}
	}
	return domain.None[string]()
}

// SelectPublishTag is a shorthand for NewMatcher followed by Select.
func SelectPublishTag(newTags []string, include string, excludes []string) (domain.Optional[string], error) {
	m, err := NewMatcher(include, excludes)
	if err != nil {
		return domain.None[string](), err
	}
	return m.Select(newTags), nil
}

// matches is only called with validated patterns.
func matches(pattern, tag string) bool {
	ok, err := doublestar.Match(pattern, tag)
	return err == nil && ok
}
