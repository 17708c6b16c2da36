package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/raphi011/dlcmd/internal/git"
)

// ErrNotFound is returned for operations on a project that does not exist.
var ErrNotFound = errors.New("project not found")

// State is a resolved project with its current configuration.
type State struct {
	Name     string
	Path     string
	Revision string // tip of refs/meta/config, "" if the ref does not exist
	Config   *Config
}

// PluginConfig returns the plugin section of the current configuration.
func (s *State) PluginConfig(pluginName string) PluginConfig {
	return s.Config.PluginConfig(pluginName)
}

// Cache resolves projects under a site directory. Resolved states are kept
// until the project's refs/meta/config moves.
type Cache struct {
	siteDir string

	mu     sync.Mutex
	states map[string]*State
}

// NewCache creates a cache for the bare repositories under siteDir.
func NewCache(siteDir string) *Cache {
	return &Cache{
		siteDir: siteDir,
		states:  make(map[string]*State),
	}
}

// SiteDir returns the directory projects are read from.
func (c *Cache) SiteDir() string {
	return c.siteDir
}

// Path returns the repository path of a project.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.siteDir, filepath.FromSlash(name)+".git")
}

// All returns the names of all projects, sorted.
func (c *Cache) All(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(c.siteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() || path == c.siteDir || !strings.HasSuffix(d.Name(), ".git") {
			return nil
		}
		if !git.IsBareRepo(path) {
			return nil
		}

		rel, err := filepath.Rel(c.siteDir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(strings.TrimSuffix(rel, ".git")))
		return fs.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("list projects in %s: %w", c.siteDir, err)
	}

	slices.Sort(names)
	return names, nil
}

// Get resolves a project to its current state.
// Returns nil without error if the project does not exist.
func (c *Cache) Get(ctx context.Context, name string) (*State, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := c.Path(name)
	if !git.IsBareRepo(path) {
		c.Evict(name)
		return nil, nil
	}

	rev, err := git.ResolveRef(ctx, path, git.RefConfig)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	cached, ok := c.states[name]
	c.mu.Unlock()
	if ok && cached.Revision == rev {
		return cached, nil
	}

	cfg, err := readConfig(ctx, path, rev)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", name, err)
	}

	state := &State{Name: name, Path: path, Revision: rev, Config: cfg}
	c.mu.Lock()
	c.states[name] = state
	c.mu.Unlock()
	return state, nil
}

// Evict drops the cached state of a project.
func (c *Cache) Evict(name string) {
	c.mu.Lock()
	delete(c.states, name)
	c.mu.Unlock()
}

// Revision returns the object id ref points to in a project, "" if the ref
// does not exist.
func (c *Cache) Revision(ctx context.Context, name, ref string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	path := c.Path(name)
	if !git.IsBareRepo(path) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return git.ResolveRef(ctx, path, ref)
}

// ReadConfig reads a project's configuration at revision.
// A zero revision or a revision without project.config yields an empty
// configuration. A malformed file yields an error wrapping ErrConfigInvalid.
func (c *Cache) ReadConfig(ctx context.Context, name, revision string) (*Config, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := c.Path(name)
	if !git.IsBareRepo(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	cfg, err := readConfig(ctx, path, revision)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", name, err)
	}
	return cfg, nil
}

func readConfig(ctx context.Context, repoPath, revision string) (*Config, error) {
	if git.IsZeroID(revision) {
		return NewConfig(revision, nil), nil
	}

	ok, err := git.ObjectExists(ctx, repoPath, revision)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("revision %s not found", revision)
	}

	ok, err = git.BlobExists(ctx, repoPath, revision, git.ProjectConfigFile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewConfig(revision, nil), nil
	}

	entries, err := git.ReadConfigBlob(ctx, repoPath, revision, git.ProjectConfigFile)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w at %s: %w", ErrConfigInvalid, revision, err)
	}
	return NewConfig(revision, entries), nil
}

// ValidateName rejects names that would escape the site directory.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("project name is empty")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("invalid project name %q", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("invalid project name %q", name)
		}
	}
	return nil
}

