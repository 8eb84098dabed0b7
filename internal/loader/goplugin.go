//go:build linux || darwin

package loader

import (
	"plugin"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modhost/internal/capability"
)

// GoPluginOpener backs Opener with the standard library's plugin package,
// the in-process dynamic loading primitive on Linux and macOS. The plugin
// runtime caches opened paths, so reopening an image is cheap and images
// stay mapped for the life of the process.
type GoPluginOpener struct{}

type goPluginImage struct {
	p *plugin.Plugin
}

// Open opens the shared object at path.
func (GoPluginOpener) Open(path string) (Image, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return goPluginImage{p: p}, nil
}

// Lookup resolves an exported symbol from the image. Func declarations
// surface as func values; exported vars surface as pointers, so var-form
// ABI entry points are unwrapped to the plain func the load path asserts.
func (img goPluginImage) Lookup(symbol string) (any, error) {
	sym, err := img.p.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	switch fn := sym.(type) {
	case *func(capability.Module):
		return *fn, nil
	case *func(capability.Host) capability.Module:
		return *fn, nil
	case *func(capability.Host, cty.Value) capability.Module:
		return *fn, nil
	default:
		return sym, nil
	}
}
