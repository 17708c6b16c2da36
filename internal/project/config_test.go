package project

import (
	"reflect"
	"testing"

	"github.com/raphi011/dlcmd/internal/git"
)

func TestPluginConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig("abc", []git.ConfigEntry{
		{Section: "project", Name: "description", Value: "demo"},
		{Section: "plugin", Subsection: "download-commands", Name: "checkout", Value: "git checkout FETCH_HEAD"},
		{Section: "plugin", Subsection: "other", Name: "checkout", Value: "ignored"},
		{Section: "plugin", Subsection: "download-commands", Name: "pull", Value: "git pull ${url} ${ref}"},
		{Section: "plugin", Subsection: "download-commands", Name: "checkout", Value: "git switch --detach FETCH_HEAD"},
	})

	pc := cfg.PluginConfig("download-commands")

	if got, want := pc.Names(), []string{"checkout", "pull"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if got := pc.String("checkout"); got != "git switch --detach FETCH_HEAD" {
		t.Errorf("String(checkout) = %q, want last value", got)
	}
	if got := pc.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
	if pc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pc.Len())
	}
}

func TestPluginConfig_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"no entries", NewConfig(git.ZeroID, nil)},
		{"other plugin only", NewConfig("abc", []git.ConfigEntry{
			{Section: "plugin", Subsection: "reviewers", Name: "group", Value: "core"},
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pc := tt.cfg.PluginConfig("download-commands")
			if pc.Len() != 0 || len(pc.Names()) != 0 {
				t.Errorf("expected empty plugin config, got %v", pc.Names())
			}
		})
	}
}

func TestPluginConfig_NamesIsCopy(t *testing.T) {
	t.Parallel()

	pc := NewConfig("abc", []git.ConfigEntry{
		{Section: "plugin", Subsection: "download-commands", Name: "a", Value: "x"},
	}).PluginConfig("download-commands")

	names := pc.Names()
	names[0] = "mutated"
	if pc.Names()[0] != "a" {
		t.Error("Names() exposed internal slice")
	}
}
