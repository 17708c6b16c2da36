package download

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Scheme yields the URL a project is downloaded from over one protocol.
type Scheme interface {
	Name() string
	URL(project string) string
}

// URLScheme appends the project name to a base URL.
type URLScheme struct {
	name string
	base string
}

// NewURLScheme validates base and returns a scheme named name.
func NewURLScheme(name, base string) (*URLScheme, error) {
	if name == "" {
		return nil, fmt.Errorf("scheme name is empty")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("scheme %s: parse url: %w", name, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("scheme %s: url %q has no protocol", name, base)
	}
	if u.Host == "" && u.Scheme != "file" {
		return nil, fmt.Errorf("scheme %s: url %q has no host", name, base)
	}
	return &URLScheme{name: name, base: strings.TrimSuffix(base, "/")}, nil
}

// Name returns the scheme name, e.g. "http" or "ssh".
func (s *URLScheme) Name() string {
	return s.name
}

// URL returns base/project.
func (s *URLScheme) URL(project string) string {
	return s.base + "/" + project
}

// SchemesFromMap builds schemes from name -> base URL, sorted by name.
func SchemesFromMap(bases map[string]string) ([]Scheme, error) {
	names := make([]string, 0, len(bases))
	for name := range bases {
		names = append(names, name)
	}
	slices.Sort(names)

	schemes := make([]Scheme, 0, len(names))
	for _, name := range names {
		s, err := NewURLScheme(name, bases[name])
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, s)
	}
	return schemes, nil
}

// FindScheme returns the scheme called name.
func FindScheme(schemes []Scheme, name string) (Scheme, error) {
	for _, s := range schemes {
		if s.Name() == name {
			return s, nil
		}
	}
	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name()
	}
	return nil, fmt.Errorf("unknown scheme %q (available: %s)", name, strings.Join(names, ", "))
}
