package git

import (
	"errors"
	"os/exec"
)

// ErrGitNotFound is returned when git is not on PATH.
var ErrGitNotFound = errors.New("git not found in PATH")

// CheckGit verifies that git is available.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}
