package domain

// SyncMode is the kind of update the target needs to match upstream.
type SyncMode int

const (
	// SyncModeNone means the target already matches upstream.
	SyncModeNone SyncMode = iota
	// SyncModeNormal means upstream only added history on top of the target.
	SyncModeNormal
	// SyncModeForce means the target diverged and is overwritten from upstream.
	SyncModeForce
)

func (m SyncMode) String() string {
	switch m {
	case SyncModeNormal:
		return "normal"
	case SyncModeForce:
		return "force"
	default:
		return "none"
	}
}
