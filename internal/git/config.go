package git

import (
	"bytes"
	"context"
	"strings"
)

// ConfigEntry is a single variable from a git-config formatted file.
// Section and Name are lowercased by git; Subsection keeps its case.
type ConfigEntry struct {
	Section    string
	Subsection string
	Name       string
	Value      string
}

// ReadConfigBlob parses the git-config formatted blob at rev:path.
// The error is the raw git failure; callers decide whether it means a
// missing object or a malformed file.
func ReadConfigBlob(ctx context.Context, repoPath, rev, path string) ([]ConfigEntry, error) {
	out, err := outputGit(ctx, repoPath, "config", "-z", "--blob", rev+":"+path, "--list")
	if err != nil {
		return nil, err
	}
	return parseConfigList(out), nil
}

// parseConfigList parses `git config -z --list` output: records are
// NUL-terminated, key and value separated by a newline. A key without a
// value (boolean shorthand) has no newline.
func parseConfigList(data []byte) []ConfigEntry {
	var entries []ConfigEntry
	for _, rec := range bytes.Split(data, []byte{0}) {
		if len(rec) == 0 {
			continue
		}
		key, value, _ := strings.Cut(string(rec), "\n")
		entry, ok := splitConfigKey(key)
		if !ok {
			continue
		}
		entry.Value = value
		entries = append(entries, entry)
	}
	return entries
}

// splitConfigKey splits "section.sub.section.name" into its parts.
// Section and name never contain dots, the subsection may.
func splitConfigKey(key string) (ConfigEntry, bool) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first <= 0 || last == len(key)-1 {
		return ConfigEntry{}, false
	}

	entry := ConfigEntry{
		Section: key[:first],
		Name:    key[last+1:],
	}
	if first != last {
		entry.Subsection = key[first+1 : last]
	}
	return entry, true
}
