package orchestrator

import (
	"os"
	"time"
)

// Timeout constants for different operations
var (
	// LockTimeout bounds the wait for another run to release the working directory
	LockTimeout = getTimeoutOrDefault("LOCK_TIMEOUT", 5*time.Minute)
)

const (
	// RunDirName is the directory under the workdir holding per-run clones
	RunDirName = ".upstream-sync"
	// UpstreamRemote is the remote name of the upstream repository in the target clone
	UpstreamRemote = "upstream"
	// OriginRemote is the remote name of the target repository
	OriginRemote = "origin"
)

// getTimeoutOrDefault returns the duration set in envVar, or fallback when it is
// unset or malformed.
func getTimeoutOrDefault(envVar string, fallback time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	return fallback
}
