package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DataDirName is the launcher's state directory inside the base
// directory. It holds the instance lock and the preflight marker.
const DataDirName = ".paylaunch"

// LockFileName is the single-instance lock file inside DataDirName.
const LockFileName = "launch.lock"

// DataDir returns the launcher state directory for a base directory.
func DataDir(baseDir string) string {
	return filepath.Join(baseDir, DataDirName)
}

// InstanceLock is a non-blocking advisory lock guaranteeing one running
// launcher per base directory.
type InstanceLock struct {
	fl *flock.Flock
}

// NewInstanceLock creates a lock handle for the given base directory.
// Nothing is acquired until Acquire is called.
func NewInstanceLock(baseDir string) *InstanceLock {
	return &InstanceLock{
		fl: flock.New(filepath.Join(DataDir(baseDir), LockFileName)),
	}
}

// Acquire attempts a non-blocking exclusive lock. Returns false when
// another instance already holds it.
func (l *InstanceLock) Acquire() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}

	locked, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire instance lock: %w", err)
	}
	return locked, nil
}

// Release drops the lock. Safe to call when never acquired.
func (l *InstanceLock) Release() error {
	return l.fl.Unlock()
}
