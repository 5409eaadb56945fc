package domain

// Commit is a single entry of a branch history.
type Commit struct {
	ID      string
	Message string
}

// History is the commit list of a branch, newest first.
type History struct {
	Commits []Commit
	Latest  Optional[string]
}

// NewHistory builds a History from commits ordered newest first.
// An empty list yields an absent Latest.
func NewHistory(commits []Commit) History {
	if len(commits) == 0 {
		return History{Latest: None[string]()}
	}
	return History{
		Commits: commits,
		Latest:  Some(commits[0].ID),
	}
}

// IsEmpty reports whether the branch has no commits.
func (h History) IsEmpty() bool {
	return len(h.Commits) == 0
}

// ShortID returns the abbreviated commit id.
func (c Commit) ShortID() string {
	if len(c.ID) <= 7 {
		return c.ID
	}
	return c.ID[:7]
}
