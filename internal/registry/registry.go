package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/modhost/internal/capability"
)

// record is the registry's bookkeeping for one module. The registry owns
// the record and the instance inside it exclusively.
type record struct {
	instance   capability.Module
	destroy    capability.DestroyFunc
	sourcePath string
	refs       int
}

// Leak describes a module that survived ClearAll because some holder never
// released it.
type Leak struct {
	Name string
	Refs int
}

// Registry maps module names to their records. The zero value is not usable;
// construct with New. Not safe for concurrent use.
type Registry struct {
	logger  *slog.Logger
	records map[string]*record
}

// Registry is the Host handed to module factories.
var _ capability.Host = (*Registry)(nil)

// New creates an empty registry logging through the given logger. A nil
// logger falls back to slog.Default.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		records: make(map[string]*record),
	}
}

// Register inserts an already-constructed module under its self-reported
// name with a reference count of one, then notifies every other registered
// module of the newcomer. The new module receives no notifications for
// modules that preceded it.
//
// On failure the registry has not touched mod; the caller keeps ownership
// and is responsible for disposing of it.
func (r *Registry) Register(mod capability.Module, destroy capability.DestroyFunc, sourcePath string) error {
	if mod == nil {
		return fmt.Errorf("register: %w", ErrInvalidModule)
	}
	name := mod.Name()
	if _, exists := r.records[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrNameConflict)
	}

	r.records[name] = &record{
		instance:   mod,
		destroy:    destroy,
		sourcePath: sourcePath,
		refs:       1,
	}
	r.logger.Debug("Module registered.", "name", name, "path", sourcePath)

	// Iteration order over peers is map order, which Go randomizes. No
	// ordering guarantee is made between peers.
	for peerName, peer := range r.records {
		if peerName != name {
			peer.instance.OnPeerLoaded(name)
		}
	}
	return nil
}

// Acquire returns the named module and takes one reference on it. Every
// successful Acquire must be balanced by exactly one Release.
func (r *Registry) Acquire(name string) (capability.Module, error) {
	rec, ok := r.records[name]
	if !ok {
		return nil, fmt.Errorf("acquire %q: %w", name, ErrNotFound)
	}
	rec.refs++
	return rec.instance, nil
}

// AcquireAs acquires the named module and narrows it to the capability T.
// If the module does not implement T, the acquire is undone and an error
// wrapping ErrCapability is returned, so refcounts stay balanced either way.
func AcquireAs[T any](r *Registry, name string) (T, error) {
	var zero T
	mod, err := r.Acquire(name)
	if err != nil {
		return zero, err
	}
	t, ok := mod.(T)
	if !ok {
		if relErr := r.Release(name); relErr != nil {
			return zero, relErr
		}
		return zero, fmt.Errorf("acquire %q: %w", name, ErrCapability)
	}
	return t, nil
}

// Release drops one reference from the named module. The release that
// brings the count to zero unloads the module and runs its destructor.
//
// Releasing more often than acquired panics: the count going negative means
// a caller dropped a reference it never held.
func (r *Registry) Release(name string) error {
	rec, ok := r.records[name]
	if !ok {
		return fmt.Errorf("release %q: %w", name, ErrNotFound)
	}
	if rec.refs == 0 {
		panic(fmt.Sprintf("registry: release of %q drops reference count below zero", name))
	}
	rec.refs--
	if rec.refs == 0 {
		return r.Unload(name)
	}
	return nil
}

// Unload removes the named record and runs its destructor, but only when no
// references remain; otherwise it fails with ErrInUse.
//
// Unload exists for callers that manage lifetimes by hand. Prefer Release:
// a direct Unload can destroy a module while raw handles obtained earlier
// are still held elsewhere.
func (r *Registry) Unload(name string) error {
	rec, ok := r.records[name]
	if !ok {
		return fmt.Errorf("unload %q: %w", name, ErrNotFound)
	}
	if rec.refs > 0 {
		return fmt.Errorf("unload %q: %w", name, ErrInUse)
	}
	r.logger.Debug("Module unloaded.", "name", name)
	if rec.destroy != nil {
		rec.destroy(rec.instance)
	}
	delete(r.records, name)
	return nil
}

// ClearAll unloads every unreferenced module, repeating until a full pass
// makes no progress (a destructor may release peers, freeing them for the
// next pass). Records still present afterwards are leaks: they are reported
// and left alive, never forcibly destroyed.
func (r *Registry) ClearAll() []Leak {
	for {
		progress := false
		for name, rec := range r.records {
			if rec.refs == 0 {
				if err := r.Unload(name); err == nil {
					progress = true
				}
			}
		}
		if !progress {
			break
		}
	}

	var leaks []Leak
	for name, rec := range r.records {
		leaks = append(leaks, Leak{Name: name, Refs: rec.refs})
		r.logger.Error("Module not released correctly; release every acquired handle before teardown.",
			"name", name, "references", rec.refs)
	}
	if len(leaks) == 0 {
		r.logger.Debug("All modules unloaded cleanly.")
	}
	return leaks
}

// ListAll returns every module and takes a reference on each, turning a
// borrowed snapshot into an owned one. Each returned module must be
// released individually.
func (r *Registry) ListAll() []capability.Module {
	mods := make([]capability.Module, 0, len(r.records))
	for _, rec := range r.records {
		rec.refs++
		mods = append(mods, rec.instance)
	}
	return mods
}

// ListNames returns the names of all registered modules without touching
// any reference counts.
func (r *Registry) ListNames() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	return names
}

// Len reports the number of registered modules.
func (r *Registry) Len() int {
	return len(r.records)
}
