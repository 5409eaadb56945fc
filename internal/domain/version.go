package domain

import (
	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version for tag names that follow semantic versioning.
type Version struct {
	*semver.Version
}

// NewVersion creates a new Version from a string.
func NewVersion(s string) (*Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

// ParseTagVersion returns the Version of a tag name, or nil when the tag is
// not a semantic version.
func ParseTagVersion(tag string) *Version {
	v, err := NewVersion(tag)
	if err != nil {
		return nil
	}
	return v
}

// IsPrerelease reports whether the version carries a prerelease suffix.
func (v *Version) IsPrerelease() bool {
	return v.Prerelease() != ""
}

// Plain returns the version string without the v prefix.
func (v *Version) Plain() string {
	return v.Version.String()
}

// String returns the version string with v prefix.
func (v *Version) String() string {
	return "v" + v.Version.String()
}
