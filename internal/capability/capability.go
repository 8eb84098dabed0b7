// Package capability defines the contract every runtime module satisfies and
// the narrow host surface a module may call back into.
//
// The package is interfaces only. The registry implements Host; modules
// implement Module. Keeping the contract separate from the registry breaks
// the cycle between a registry that owns modules and modules that look up
// their peers through the registry.
package capability

// Description is a module's self-description, reported alongside its name
// and version when the host composes module info.
type Description struct {
	Src      string
	Revision string
}

// Module is the capability interface. Every module managed by the host
// implements it, whether compiled in or loaded from a code image.
type Module interface {
	// Name returns the module's unique self-reported name. It is the
	// registry key and must be stable for the module's lifetime.
	Name() string

	// Version returns the module's interface version.
	Version() int

	// Describe returns the module's source/revision self-description.
	Describe() Description

	// OnPeerLoaded informs the module that a peer named name was just
	// registered. Called synchronously on the registering goroutine.
	OnPeerLoaded(name string)
}

// Host is the non-owning back-reference a module holds to its registry,
// limited to peer lookup. A module must never retain the host beyond its
// own lifetime; the registry always outlives its modules.
type Host interface {
	Acquire(name string) (Module, error)
	Release(name string) error
}

// DestroyFunc disposes of a module instance. Modules registered with a nil
// DestroyFunc manage their own disposal.
type DestroyFunc func(Module)
