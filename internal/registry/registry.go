// Package registry is the extension map plugins register implementations in.
//
// Entries are keyed by (plugin name, export name). Registering returns a
// [Handle] that revokes exactly that registration: if the slot has since been
// replaced by a newer registration, removing the old handle leaves the newer
// one in place.
package registry

import (
	"cmp"
	"slices"
	"sync"
)

// Provider creates the registered implementation on demand.
type Provider[T any] func() T

// Handle revokes a single registration.
type Handle interface {
	Remove()
}

// Entry is a snapshot of one registration.
type Entry[T any] struct {
	PluginName string
	ExportName string
	Provider   Provider[T]
}

type key struct {
	plugin string
	export string
}

// registration is compared by pointer to tell replaced slots apart.
type registration[T any] struct {
	provider Provider[T]
}

// Map is a concurrency-safe extension map.
type Map[T any] struct {
	mu    sync.RWMutex
	items map[key]*registration[T]
}

// New creates an empty map.
func New[T any]() *Map[T] {
	return &Map[T]{items: make(map[key]*registration[T])}
}

// Put registers provider under (pluginName, exportName), replacing any
// existing registration in that slot.
func (m *Map[T]) Put(pluginName, exportName string, provider Provider[T]) Handle {
	reg := &registration[T]{provider: provider}
	k := key{plugin: pluginName, export: exportName}

	m.mu.Lock()
	m.items[k] = reg
	m.mu.Unlock()

	return &handle[T]{m: m, key: k, reg: reg}
}

// Get returns the provider registered under (pluginName, exportName).
func (m *Map[T]) Get(pluginName, exportName string) (Provider[T], bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reg, ok := m.items[key{plugin: pluginName, export: exportName}]
	if !ok {
		return nil, false
	}
	return reg.provider, true
}

// Entries returns all registrations sorted by plugin name, then export name.
func (m *Map[T]) Entries() []Entry[T] {
	m.mu.RLock()
	entries := make([]Entry[T], 0, len(m.items))
	for k, reg := range m.items {
		entries = append(entries, Entry[T]{
			PluginName: k.plugin,
			ExportName: k.export,
			Provider:   reg.provider,
		})
	}
	m.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry[T]) int {
		return cmp.Or(cmp.Compare(a.PluginName, b.PluginName), cmp.Compare(a.ExportName, b.ExportName))
	})
	return entries
}

// Len returns the number of registrations.
func (m *Map[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

type handle[T any] struct {
	m   *Map[T]
	key key
	reg *registration[T]
}

// Remove deletes the registration if it is still the one this handle was
// issued for. Calling it more than once is harmless.
func (h *handle[T]) Remove() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.m.items[h.key] == h.reg {
		delete(h.m.items, h.key)
	}
}
