//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/raphi011/dlcmd/internal/config"
	"github.com/raphi011/dlcmd/internal/log"
	"github.com/raphi011/dlcmd/internal/output"
	"github.com/raphi011/dlcmd/internal/testutil"
)

const demoConfig = `[plugin "download-commands"]
	checkout = git fetch ${url} ${ref} && git checkout FETCH_HEAD
	clone-with-commit-msg-hook = git clone ${url} ${project}
`

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testSite creates a site directory and a config with an http scheme.
func testSite(t *testing.T) (string, *config.Config) {
	t.Helper()
	site := testutil.Site(t)
	cfg := config.Default()
	cfg.SiteDir = site
	cfg.Schemes = map[string]string{
		"http": "https://review.example.com",
		"ssh":  "ssh://review.example.com:29418",
	}
	return site, &cfg
}

// testContext returns a context carrying cfg, a quiet logger and a printer
// writing to the returned buffer.
func testContext(t *testing.T, cfg *config.Config) (context.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := context.Background()
	ctx = config.WithConfig(ctx, cfg)
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &out)
	return ctx, &out
}
