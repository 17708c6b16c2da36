//go:build integration

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/dlcmd/internal/lock"
	"github.com/raphi011/dlcmd/internal/log"
	"github.com/raphi011/dlcmd/internal/testutil"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

// TestServe_ReactsToConfigUpdate tests that serve picks up a new project.config.
//
// Scenario: `dlcmd serve --interval 50ms` runs while project.config is committed
// Expected: The update is reported, serve exits cleanly on cancel and releases the lock
func TestServe_ReactsToConfigUpdate(t *testing.T) {
	t.Parallel()

	site, cfg := testSite(t)
	repo := testutil.InitBare(t, site, "demo")
	testutil.CommitConfig(t, repo, demoConfig)

	ctx, _ := testContext(t, cfg)
	var logs syncBuffer
	ctx = log.WithLogger(ctx, log.New(&logs, false, false))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := newServeCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--interval", "50ms"})

	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()

	if !waitFor(t, 5*time.Second, func() bool { return strings.Contains(logs.String(), "Watching ") }) {
		t.Fatalf("serve did not start:\n%s", logs.String())
	}

	testutil.CommitConfig(t, repo, "[plugin \"download-commands\"]\n\tcheckout = git checkout ${ref}\n")

	if !waitFor(t, 5*time.Second, func() bool {
		return strings.Contains(logs.String(), "Updated download commands for demo (1 registered)")
	}) {
		t.Errorf("update not reported:\n%s", logs.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}

	l := lock.ForSite(site)
	if err := l.TryLock(); err != nil {
		t.Errorf("site lock still held after serve exited: %v", err)
	}
	l.Unlock()
}

// TestServe_SiteLocked tests that only one serve runs per site.
//
// Scenario: User runs `dlcmd serve` while another process holds the site lock
// Expected: ErrLocked is returned immediately
func TestServe_SiteLocked(t *testing.T) {
	t.Parallel()

	site, cfg := testSite(t)
	held := lock.ForSite(site)
	if err := held.TryLock(); err != nil {
		t.Fatal(err)
	}
	defer held.Unlock()

	ctx, _ := testContext(t, cfg)

	cmd := newServeCmd()
	cmd.SetContext(ctx)
	if err := cmd.Execute(); !errors.Is(err, lock.ErrLocked) {
		t.Errorf("serve = %v, want ErrLocked", err)
	}
}

// TestServe_MissingSiteDir tests a site_dir that does not exist.
//
// Scenario: User runs `dlcmd serve` with site_dir pointing nowhere
// Expected: Error mentioning the site directory
func TestServe_MissingSiteDir(t *testing.T) {
	t.Parallel()

	_, cfg := testSite(t)
	cfg.SiteDir = cfg.SiteDir + "/missing"
	ctx, _ := testContext(t, cfg)

	cmd := newServeCmd()
	cmd.SetContext(ctx)
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "site directory") {
		t.Errorf("serve = %v", err)
	}
}

// TestPick_RequiresTerminal tests pick without a terminal.
//
// Scenario: User runs `dlcmd pick demo` with stdin not a terminal (go test)
// Expected: errNotInteractive, nothing printed
func TestPick_RequiresTerminal(t *testing.T) {
	t.Parallel()

	site, cfg := testSite(t)
	testutil.CommitConfig(t, testutil.InitBare(t, site, "demo"), demoConfig)
	ctx, out := testContext(t, cfg)

	cmd := newPickCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"demo"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); !errors.Is(err, errNotInteractive) {
		t.Errorf("pick = %v, want errNotInteractive", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}
