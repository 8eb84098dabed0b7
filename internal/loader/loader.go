// Package loader opens module code images and drives the dynamic load path:
// resolve a name to a file, open it, resolve the factory ABI, construct the
// module, and hand it to the registry.
package loader

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modhost/internal/capability"
)

// Symbol names of the factory ABI every loadable image exports. These are
// the exported-Go spellings of the classic C entry points (destroy_c,
// create_c, config_create_c); stdlib plugin images can only export
// uppercase identifiers.
const (
	SymDestroy      = "DestroyC"
	SymCreate       = "CreateC"
	SymConfigCreate = "ConfigCreateC"
)

// CreateFunc constructs a module. The host reference is non-owning: the
// module may use it to acquire peers but must not extend its lifetime.
type CreateFunc func(host capability.Host) capability.Module

// ConfigCreateFunc constructs a module from a configuration payload.
type ConfigCreateFunc func(host capability.Host, config cty.Value) capability.Module

// Image is one opened code image. Lookup resolves a named entry point; the
// concrete type behind the returned value depends on the Opener.
type Image interface {
	Lookup(symbol string) (any, error)
}

// Opener is the OS-level dynamic loading primitive, kept behind an
// interface so hosts and tests can substitute their own. Opening the same
// path twice may return the same underlying image.
//
// Opened images are never closed: a module's destructor releases the
// instance, not the code it was built from, so function values handed out
// earlier can never dangle.
type Opener interface {
	Open(path string) (Image, error)
}
