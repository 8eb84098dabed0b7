package loader

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modhost/internal/capability"
	"github.com/vk/modhost/internal/ctxlog"
	"github.com/vk/modhost/internal/registry"
	"github.com/vk/modhost/internal/resolve"
)

// Loader ties an Opener and a Resolver to a registry. One Loader serves any
// number of Load calls; it holds no per-load state.
type Loader struct {
	opener   Opener
	resolver *resolve.Resolver
	registry *registry.Registry
}

// New builds a Loader loading into the given registry.
func New(opener Opener, resolver *resolve.Resolver, reg *registry.Registry) *Loader {
	return &Loader{opener: opener, resolver: resolver, registry: reg}
}

// Load resolves the named module, opens its image, constructs an instance
// through the factory ABI, and registers it. A non-nil config selects the
// configuration-accepting factory; the two factories are mutually
// exclusive and only the selected one is required to exist.
//
// If registration fails (for example a name conflict) the freshly built
// instance is destroyed before the error is propagated, so a failed load
// never leaks an instance.
func (l *Loader) Load(ctx context.Context, name string, config *cty.Value) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading module.", "name", name)

	path := l.resolver.Resolve(ctx, name)

	img, err := l.opener.Open(path)
	if err != nil {
		return fmt.Errorf("open %q: %w: %v", path, ErrLoadFailed, err)
	}

	destroy, err := lookupDestroy(img)
	if err != nil {
		return fmt.Errorf("module %q: %w", name, err)
	}

	var mod capability.Module
	if config == nil {
		create, err := lookupCreate(img)
		if err != nil {
			return fmt.Errorf("module %q: %w", name, err)
		}
		mod = create(l.registry)
	} else {
		create, err := lookupConfigCreate(img)
		if err != nil {
			return fmt.Errorf("module %q: %w", name, err)
		}
		mod = create(l.registry, *config)
	}
	if mod == nil {
		return fmt.Errorf("module %q: factory returned no instance: %w", name, ErrLoadFailed)
	}

	if err := l.registry.Register(mod, capability.DestroyFunc(destroy), path); err != nil {
		destroy(mod)
		return err
	}
	logger.Info("Module loaded.", "name", mod.Name(), "path", path)
	return nil
}

// lookupDestroy resolves the mandatory destructor entry point. An image
// without one is malformed and must not be instantiated at all.
func lookupDestroy(img Image) (func(capability.Module), error) {
	sym, err := img.Lookup(SymDestroy)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w: %v", SymDestroy, ErrLoadFailed, err)
	}
	fn, ok := sym.(func(capability.Module))
	if !ok {
		return nil, fmt.Errorf("symbol %s has wrong signature: %w", SymDestroy, ErrLoadFailed)
	}
	return fn, nil
}

func lookupCreate(img Image) (CreateFunc, error) {
	sym, err := img.Lookup(SymCreate)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w: %v", SymCreate, ErrLoadFailed, err)
	}
	fn, ok := sym.(func(capability.Host) capability.Module)
	if !ok {
		return nil, fmt.Errorf("symbol %s has wrong signature: %w", SymCreate, ErrLoadFailed)
	}
	return fn, nil
}

func lookupConfigCreate(img Image) (ConfigCreateFunc, error) {
	sym, err := img.Lookup(SymConfigCreate)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w: %v", SymConfigCreate, ErrLoadFailed, err)
	}
	fn, ok := sym.(func(capability.Host, cty.Value) capability.Module)
	if !ok {
		return nil, fmt.Errorf("symbol %s has wrong signature: %w", SymConfigCreate, ErrLoadFailed)
	}
	return fn, nil
}
