package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/dlcmd/internal/cmd"
)

const (
	// RefConfig is the metadata ref holding a project's versioned configuration.
	RefConfig = "refs/meta/config"

	// ProjectConfigFile is the configuration file at the root of RefConfig.
	ProjectConfigFile = "project.config"

	// ZeroID is the object id reported for a ref that does not exist on one
	// side of an update.
	ZeroID = "0000000000000000000000000000000000000000"
)

// IsZeroID reports whether id is empty or consists only of zeros.
// Works for both SHA-1 and SHA-256 repositories.
func IsZeroID(id string) bool {
	return strings.Trim(id, "0") == ""
}

// ResolveRef returns the object id ref points to.
// Returns "" without error if the ref does not exist.
func ResolveRef(ctx context.Context, repoPath, ref string) (string, error) {
	out, err := outputGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", ref)
	if err != nil {
		// --quiet turns "no such ref" into a silent exit 1
		if cmd.ExitCode(err) == 1 {
			return "", nil
		}
		return "", fmt.Errorf("resolve %s in %s: %w", ref, repoPath, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ObjectExists reports whether rev names an object present in the repository.
func ObjectExists(ctx context.Context, repoPath, rev string) (bool, error) {
	return exists(ctx, repoPath, rev)
}

// BlobExists reports whether path exists in the tree of rev.
func BlobExists(ctx context.Context, repoPath, rev, path string) (bool, error) {
	return exists(ctx, repoPath, rev+":"+path)
}

func exists(ctx context.Context, repoPath, spec string) (bool, error) {
	err := runGit(ctx, repoPath, "cat-file", "-e", spec)
	if err == nil {
		return true, nil
	}
	var exitErr *cmd.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("check %s in %s: %w", spec, repoPath, err)
}
