// Package lock guards a site directory against concurrent servers with an
// flock on a lock file.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileName is the lock file created in the site directory.
const FileName = ".dlcmd.lock"

// ErrLocked is returned by TryLock when another process holds the lock.
var ErrLocked = errors.New("site is locked by another process")

// FileLock is an exclusive advisory lock on one file.
type FileLock struct {
	path string
	file *os.File
}

// New returns a lock for path. The file is created on first use.
func New(path string) *FileLock {
	return &FileLock{path: path}
}

// ForSite returns the lock guarding siteDir.
func ForSite(siteDir string) *FileLock {
	return New(filepath.Join(siteDir, FileName))
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Lock blocks until the lock is acquired.
func (l *FileLock) Lock() error {
	return l.acquire(syscall.LOCK_EX)
}

// TryLock acquires the lock without waiting. It returns ErrLocked if the
// lock is held elsewhere.
func (l *FileLock) TryLock() error {
	err := l.acquire(syscall.LOCK_EX | syscall.LOCK_NB)
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return fmt.Errorf("%w: %s", ErrLocked, l.path)
	}
	return err
}

func (l *FileLock) acquire(how int) error {
	if l.file != nil {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	if err := syscall.Flock(int(f.Fd()), how); err != nil {
		f.Close()
		return err
	}
	l.file = f
	return nil
}

// Unlock releases the lock. Unlocking a lock that is not held is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
