package registry

import "errors"

// Sentinel errors for every recoverable failure of a registry operation.
// Callers match with errors.Is; the wrapped message carries the module name.
//
// A reference-count underflow is deliberately absent: releasing a module
// more often than it was acquired is a caller bug, not an environmental
// condition, and the registry panics instead of returning an error.
var (
	// ErrNotFound reports an operation against a name with no record.
	ErrNotFound = errors.New("no module with given name loaded")

	// ErrNameConflict reports a registration under a name already taken.
	ErrNameConflict = errors.New("module name already exists")

	// ErrInUse reports a direct unload of a record that still has holders.
	ErrInUse = errors.New("module is still in use")

	// ErrInvalidModule reports a registration without an instance.
	ErrInvalidModule = errors.New("no module instance given")

	// ErrCapability reports a typed acquire whose target module does not
	// implement the requested capability.
	ErrCapability = errors.New("module does not implement requested capability")
)
