// Package testutil provides fakes shared by the module host's tests: a
// recording capability module and an in-memory stand-in for the OS dynamic
// loader.
package testutil

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modhost/internal/capability"
	"github.com/vk/modhost/internal/loader"
)

// FakeModule is a recording capability.Module for tests.
type FakeModule struct {
	ModuleName    string
	ModuleVersion int
	Src           string
	Revision      string

	// PeerEvents collects every OnPeerLoaded notification in order.
	PeerEvents []string
	// Destroyed counts DestroyFakeModule invocations.
	Destroyed int
	// Payload holds the config value a config-accepting factory received.
	Payload *cty.Value
}

var _ capability.Module = (*FakeModule)(nil)

// NewFakeModule builds a fake module with the given name and version 1.
func NewFakeModule(name string) *FakeModule {
	return &FakeModule{
		ModuleName:    name,
		ModuleVersion: 1,
		Src:           "testutil/" + name,
		Revision:      "r1",
	}
}

// Name implements capability.Module.
func (m *FakeModule) Name() string { return m.ModuleName }

// Version implements capability.Module.
func (m *FakeModule) Version() int { return m.ModuleVersion }

// Describe implements capability.Module.
func (m *FakeModule) Describe() capability.Description {
	return capability.Description{Src: m.Src, Revision: m.Revision}
}

// OnPeerLoaded implements capability.Module, recording the peer name.
func (m *FakeModule) OnPeerLoaded(name string) {
	m.PeerEvents = append(m.PeerEvents, name)
}

// DestroyFakeModule is a capability.DestroyFunc counting destructions.
func DestroyFakeModule(mod capability.Module) {
	if fm, ok := mod.(*FakeModule); ok {
		fm.Destroyed++
	}
}

// FakeImage is an in-memory code image: a symbol table.
type FakeImage struct {
	Symbols map[string]any
}

// Lookup implements loader.Image.
func (img *FakeImage) Lookup(symbol string) (any, error) {
	sym, ok := img.Symbols[symbol]
	if !ok {
		return nil, fmt.Errorf("symbol %q not found in image", symbol)
	}
	return sym, nil
}

// FakeOpener is an in-memory loader.Opener keyed by path. Paths without an
// image fail to open, like a missing shared object.
type FakeOpener struct {
	Images map[string]*FakeImage
	// Opened records every Open call in order, hit or miss.
	Opened []string
}

var _ loader.Opener = (*FakeOpener)(nil)

// NewFakeOpener builds an empty opener.
func NewFakeOpener() *FakeOpener {
	return &FakeOpener{Images: make(map[string]*FakeImage)}
}

// Open implements loader.Opener.
func (o *FakeOpener) Open(path string) (loader.Image, error) {
	o.Opened = append(o.Opened, path)
	img, ok := o.Images[path]
	if !ok {
		return nil, fmt.Errorf("cannot open image %q", path)
	}
	return img, nil
}

// AddModuleImage installs a well-formed image at path whose plain factory
// produces a fresh FakeModule named name, and returns a pointer that is
// filled with the created module once the factory runs.
func (o *FakeOpener) AddModuleImage(path, name string) **FakeModule {
	created := new(*FakeModule)
	o.Images[path] = &FakeImage{Symbols: map[string]any{
		loader.SymDestroy: func(mod capability.Module) { DestroyFakeModule(mod) },
		loader.SymCreate: func(host capability.Host) capability.Module {
			mod := NewFakeModule(name)
			*created = mod
			return mod
		},
		loader.SymConfigCreate: func(host capability.Host, config cty.Value) capability.Module {
			mod := NewFakeModule(name)
			mod.Payload = &config
			*created = mod
			return mod
		},
	}}
	return created
}
