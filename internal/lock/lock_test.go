package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestForSite(t *testing.T) {
	t.Parallel()

	l := ForSite("/srv/git")
	if want := filepath.Join("/srv/git", FileName); l.Path() != want {
		t.Errorf("Path() = %q, want %q", l.Path(), want)
	}
	if l.file != nil {
		t.Error("expected file to be nil initially")
	}
}

func TestFileLock_LockUnlock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.lock")
	l := New(path)

	if err := l.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("lock file should exist after locking: %v", err)
	}
	if err := l.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if l.file != nil {
		t.Error("expected file handle to be nil after unlocking")
	}

	// second unlock is a no-op
	if err := l.Unlock(); err != nil {
		t.Errorf("second Unlock() error = %v", err)
	}
}

func TestFileLock_TryLockHeld(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.lock")
	first := New(path)
	if err := first.TryLock(); err != nil {
		t.Fatalf("first TryLock() error = %v", err)
	}

	second := New(path)
	if err := second.TryLock(); !errors.Is(err, ErrLocked) {
		t.Errorf("second TryLock() = %v, want ErrLocked", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatal(err)
	}
	if err := second.TryLock(); err != nil {
		t.Errorf("TryLock() after release = %v", err)
	}
	second.Unlock()
}

func TestFileLock_LockBlocks(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.lock")
	first := New(path)
	if err := first.Lock(); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		second := New(path)
		err := second.Lock()
		if err == nil {
			err = second.Unlock()
		}
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("second Lock() should block while the lock is held")
	case <-time.After(30 * time.Millisecond):
	}

	if err := first.Unlock(); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("second Lock() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Error("second Lock() did not acquire after release")
	}
}

func TestFileLock_InvalidPath(t *testing.T) {
	t.Parallel()

	l := New("/non-existent-dir/test.lock")
	if err := l.TryLock(); err == nil {
		l.Unlock()
		t.Error("expected error for lock in non-existent directory")
	}
}
