package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sethvargo/go-retry"
)

const (
	// LockFileName is created inside the working directory while a run holds it
	LockFileName = ".upstream-sync.lock"
	// LockDirPermissions defines the permissions for a created working directory
	LockDirPermissions = 0755
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// ErrWorkdirLocked is returned when another run holds the working directory.
var ErrWorkdirLocked = errors.New("working directory is locked by another run")

// WorkdirLock guards a working directory against concurrent runs.
type WorkdirLock struct {
	lock    *flock.Flock
	timeout time.Duration
}

// NewWorkdirLock creates a lock for dir that waits up to timeout.
func NewWorkdirLock(dir string, timeout time.Duration) *WorkdirLock {
	return &WorkdirLock{
		lock:    flock.New(filepath.Join(dir, LockFileName)),
		timeout: timeout,
	}
}

// Lock acquires the exclusive lock, polling until the timeout elapses.
func (l *WorkdirLock) Lock(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.lock.Path()), LockDirPermissions); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}
	backoff := retry.WithMaxDuration(l.timeout, retry.NewConstant(LockRetryInterval))
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := l.lock.TryLock()
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(ErrWorkdirLocked)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", l.lock.Path(), err)
	}
	return nil
}

// Unlock releases the lock and removes the lock file.
func (l *WorkdirLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.lock.Path(), err)
	}
	if err := os.Remove(l.lock.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}
