// Package testutil builds review-site fixtures for tests: bare repositories
// whose refs/meta/config branch carries a project.config.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const metaRef = "refs/meta/config"

// Site returns a fresh site directory with symlinks resolved
// (macOS /var -> /private/var).
func Site(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return dir
}

// InitBare creates the bare repository <site>/<name>.git and returns its path.
// Name may contain slashes for nested projects.
func InitBare(t *testing.T, site, name string) string {
	t.Helper()
	path := filepath.Join(site, name+".git")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create parent of %s: %v", path, err)
	}
	Git(t, "", "init", "--bare", "-q", path)
	return path
}

// CommitConfig commits content as project.config on refs/meta/config and
// returns the new commit id.
func CommitConfig(t *testing.T, repo, content string) string {
	t.Helper()
	return CommitFiles(t, repo, map[string]string{"project.config": content})
}

// CommitFiles commits a flat tree with the given files onto refs/meta/config,
// parented on the current tip if there is one, and returns the commit id.
func CommitFiles(t *testing.T, repo string, files map[string]string) string {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var tree strings.Builder
	for _, name := range names {
		blob := GitInput(t, repo, files[name], "hash-object", "-w", "--stdin")
		tree.WriteString("100644 blob " + blob + "\t" + name + "\n")
	}
	treeID := GitInput(t, repo, tree.String(), "mktree")

	args := []string{"commit-tree", treeID, "-m", "Update project configuration"}
	if parent := RevParse(t, repo, metaRef); parent != "" {
		args = append(args, "-p", parent)
	}
	commit := Git(t, repo, args...)
	Git(t, repo, "update-ref", metaRef, commit)
	return commit
}

// DeleteMetaRef removes refs/meta/config.
func DeleteMetaRef(t *testing.T, repo string) {
	t.Helper()
	Git(t, repo, "update-ref", "-d", metaRef)
}

// RevParse returns the object id of ref, or "" if it does not exist.
func RevParse(t *testing.T, repo, ref string) string {
	t.Helper()
	c := gitCmd(repo, "rev-parse", "--verify", "--quiet", ref)
	out, err := c.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Git runs git in repo and returns trimmed stdout, failing the test on error.
func Git(t *testing.T, repo string, args ...string) string {
	t.Helper()
	return GitInput(t, repo, "", args...)
}

// GitInput is Git with stdin.
func GitInput(t *testing.T, repo, stdin string, args ...string) string {
	t.Helper()
	c := gitCmd(repo, args...)
	if stdin != "" {
		c.Stdin = strings.NewReader(stdin)
	}
	var stderr strings.Builder
	c.Stderr = &stderr
	out, err := c.Output()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, stderr.String())
	}
	return strings.TrimSpace(string(out))
}

func gitCmd(repo string, args ...string) *exec.Cmd {
	if repo != "" {
		args = append([]string{"-C", repo}, args...)
	}
	c := exec.Command("git", args...)
	c.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@test.com",
		"GIT_CONFIG_NOSYSTEM=1",
	)
	return c
}
