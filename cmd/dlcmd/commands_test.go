package main

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/raphi011/dlcmd/internal/download"
)

var testRendered = []download.Rendered{
	{Group: "download-commands_demo", Name: "checkout", Scheme: "http", Command: "git checkout"},
	{Group: "download-commands_demo", Name: "checkout", Scheme: "ssh", Command: "git checkout (ssh)"},
	{Group: "download-commands_demo", Name: "clone with commit msg hook", Scheme: "http", Command: "git clone"},
	{Group: "download-commands_demo", Name: "pull", Scheme: "http", Command: "git pull"},
}

func TestCommandNames(t *testing.T) {
	t.Parallel()

	got := commandNames(testRendered)
	want := []string{"checkout", "clone with commit msg hook", "pull"}
	if !slices.Equal(got, want) {
		t.Errorf("commandNames() = %v, want %v", got, want)
	}
}

func TestLookupCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"checkout", "git checkout", true},
		{"clone-with-commit-msg-hook", "git clone", true},
		{"clone with commit msg hook", "git clone", true},
		{"Pull", "git pull", true},
		{"push", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, ok := lookupCommand(testRendered, tt.name)
			if ok != tt.ok || r.Command != tt.want {
				t.Errorf("lookupCommand(%q) = %q, %v; want %q, %v", tt.name, r.Command, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUnknownCommandError(t *testing.T) {
	t.Parallel()

	available := []string{"checkout", "clone with commit msg hook", "pull"}

	tests := []struct {
		name      string
		input     string
		available []string
		want      string
	}{
		{"suggests close match", "chekout", available, `did you mean: checkout?`},
		{"dashes match spaces", "clone-with", available, `did you mean: clone with commit msg hook?`},
		{"lists all without match", "zzz", available, "available: checkout, clone with commit msg hook, pull"},
		{"no commands", "checkout", nil, "project demo has no download commands"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := unknownCommandError("demo", tt.input, tt.available)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("unknownCommandError(%q) = %v, want containing %q", tt.input, err, tt.want)
			}
		})
	}
}

func TestSelectedProjects_All(t *testing.T) {
	t.Parallel()

	p := selectedProjects{names: []string{"b", "a", "b"}}
	got, err := p.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("All() = %v, want [a b]", got)
	}
	if !slices.Equal(p.names, []string{"b", "a", "b"}) {
		t.Error("All() modified the selected names")
	}
}
