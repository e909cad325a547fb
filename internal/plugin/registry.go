// Package plugin implements a generic, mutex-guarded named registry. In
// this module internal/market holds the only instance; the chain roles
// (event detectors, fund selectors, signal filters, evaluators, sinks) are
// resolved by name in internal/wiring, not through a Registry.
package plugin

import (
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	arberrors "github.com/etfarb/arbscan/internal/errors"
)

// Factory builds a T from a role-specific configuration map.
type Factory[T any] func(cfg map[string]any) (T, error)

// entry is one registered plugin plus its registration metadata.
type entry[T any] struct {
	factory     Factory[T]
	priority    int
	description string
	version     string
}

// Metadata is the read-only view of a registered plugin returned by
// GetMetadata.
type Metadata struct {
	Name        string
	Priority    int
	Description string
	Version     string
}

// Registry is a generic, named, thread-safe plugin registry. The only
// instance built in this module is market.NewRegistry's profile registry.
type Registry[T any] struct {
	name   string
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]entry[T]
}

// New builds an empty Registry. logger defaults to a no-op logger when nil.
func New[T any](name string, logger *zap.Logger) *Registry[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry[T]{
		name:    name,
		logger:  logger,
		entries: make(map[string]entry[T]),
	}
}

// Register validates version as a semantic version and stores factory
// under name, priority, and description. A malformed version is a
// Config error. Registering over an existing name warns and replaces it.
func (r *Registry[T]) Register(name string, factory Factory[T], priority int, description, version string) error {
	if _, err := semver.NewVersion(version); err != nil {
		return arberrors.Wrap(err, arberrors.Config, "invalid plugin version").
			WithDetail("registry", r.name).
			WithDetail("name", name).
			WithDetail("version", version)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		r.logger.Warn("plugin already registered, replacing",
			zap.String("registry", r.name), zap.String("name", name))
	}

	r.entries[name] = entry[T]{
		factory:     factory,
		priority:    priority,
		description: description,
		version:     version,
	}
	r.logger.Debug("registered plugin",
		zap.String("registry", r.name), zap.String("name", name),
		zap.String("version", version), zap.Int("priority", priority))
	return nil
}

// RegisterManual is an alias for Register kept for parity with the
// reference implementation's register/register_manual split; both paths
// converge on the same validation and storage logic in Go, where there is
// no decorator syntax to distinguish them.
func (r *Registry[T]) RegisterManual(name string, factory Factory[T], priority int, description, version string) error {
	return r.Register(name, factory, priority, description, version)
}

// Get returns the factory registered under name, if any.
func (r *Registry[T]) Get(name string) (Factory[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.factory, true
}

// Create builds a new T from the plugin registered under name. Returns a
// NoCandidate error if name is not registered.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	factory, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, arberrors.Newf(arberrors.NoCandidate, "plugin %q not registered in %s", name, r.name)
	}
	return factory(cfg)
}

// ListNames returns every registered name sorted by priority descending,
// ties broken by name ascending for determinism.
func (r *Registry[T]) ListNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := r.entries[names[i]].priority, r.entries[names[j]].priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

// GetMetadata returns the metadata registered under name, and whether it
// was found.
func (r *Registry[T]) GetMetadata(name string) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return Metadata{}, false
	}
	return Metadata{
		Name:        name,
		Priority:    e.priority,
		Description: e.description,
		Version:     e.version,
	}, true
}

// IsRegistered reports whether name has a registered plugin.
func (r *Registry[T]) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Unregister removes name, reporting whether it was present.
func (r *Registry[T]) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	r.logger.Debug("unregistered plugin", zap.String("registry", r.name), zap.String("name", name))
	return true
}

// Clear removes every registered plugin.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]entry[T])
	r.logger.Debug("cleared registry", zap.String("registry", r.name))
}

// Count returns the number of registered plugins.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Summary returns a human-readable listing of every registered plugin,
// ordered the same way as ListNames.
func (r *Registry[T]) Summary() string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	entries := r.entries
	registryName := r.name
	r.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool {
		pi, pj := entries[names[i]].priority, entries[names[j]].priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})

	summary := "Plugin Registry: " + registryName + "\n"
	for _, name := range names {
		e := entries[name]
		summary += "  - " + name + " (v" + e.version + ")\n"
	}
	return summary
}
