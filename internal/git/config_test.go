package git

import (
	"context"
	"reflect"
	"testing"

	"github.com/raphi011/dlcmd/internal/testutil"
)

func TestParseConfigList(t *testing.T) {
	t.Parallel()

	data := []byte("plugin.download-commands.checkout\ngit fetch ${url} ${ref}\x00" +
		"plugin.my.plugin.name\nvalue\x00" +
		"core.bare\x00" +
		"project.description\nmulti\nline\x00" +
		"broken\x00")

	want := []ConfigEntry{
		{Section: "plugin", Subsection: "download-commands", Name: "checkout", Value: "git fetch ${url} ${ref}"},
		{Section: "plugin", Subsection: "my.plugin", Name: "name", Value: "value"},
		{Section: "core", Name: "bare"},
		{Section: "project", Name: "description", Value: "multi\nline"},
	}

	got := parseConfigList(data)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseConfigList() =\n%#v\nwant\n%#v", got, want)
	}
}

func TestReadConfigBlob(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := testutil.InitBare(t, testutil.Site(t), "demo")
	rev := testutil.CommitConfig(t, repo, `[project]
	description = Demo project
[plugin "download-commands"]
	clone-with-commit-msg-hook = git clone ${url} ${project}\ngit fetch ${url} ${ref}
	checkout = git checkout FETCH_HEAD
`)

	got, err := ReadConfigBlob(ctx, repo, rev, ProjectConfigFile)
	if err != nil {
		t.Fatalf("ReadConfigBlob: %v", err)
	}

	want := []ConfigEntry{
		{Section: "project", Name: "description", Value: "Demo project"},
		{Section: "plugin", Subsection: "download-commands", Name: "clone-with-commit-msg-hook", Value: "git clone ${url} ${project}\ngit fetch ${url} ${ref}"},
		{Section: "plugin", Subsection: "download-commands", Name: "checkout", Value: "git checkout FETCH_HEAD"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadConfigBlob() =\n%#v\nwant\n%#v", got, want)
	}
}

func TestReadConfigBlob_LowercasesNames(t *testing.T) {
	t.Parallel()

	repo := testutil.InitBare(t, testutil.Site(t), "demo")
	rev := testutil.CommitConfig(t, repo, "[Plugin \"Download-Commands\"]\n\tCheckout-Tag = git checkout ${ref}\n")

	got, err := ReadConfigBlob(context.Background(), repo, rev, ProjectConfigFile)
	if err != nil {
		t.Fatalf("ReadConfigBlob: %v", err)
	}

	want := []ConfigEntry{
		{Section: "plugin", Subsection: "Download-Commands", Name: "checkout-tag", Value: "git checkout ${ref}"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadConfigBlob() =\n%#v\nwant\n%#v", got, want)
	}
}

func TestReadConfigBlob_Malformed(t *testing.T) {
	t.Parallel()

	repo := testutil.InitBare(t, testutil.Site(t), "demo")
	rev := testutil.CommitConfig(t, repo, "[plugin \"download-commands\"\n\tcheckout = x\n")

	if _, err := ReadConfigBlob(context.Background(), repo, rev, ProjectConfigFile); err == nil {
		t.Error("ReadConfigBlob on malformed config = nil, want error")
	}
}

func TestIsBareRepo(t *testing.T) {
	t.Parallel()

	site := testutil.Site(t)
	repo := testutil.InitBare(t, site, "demo")

	if !IsBareRepo(repo) {
		t.Errorf("IsBareRepo(%s) = false, want true", repo)
	}
	if IsBareRepo(site) {
		t.Errorf("IsBareRepo(%s) = true, want false", site)
	}
}
