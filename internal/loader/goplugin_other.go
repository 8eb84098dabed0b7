//go:build !(linux || darwin)

package loader

import "fmt"

// GoPluginOpener is a stub on platforms where the standard library's plugin
// package is unavailable. Hosts there must supply their own Opener.
type GoPluginOpener struct{}

// Open always fails on this platform.
func (GoPluginOpener) Open(path string) (Image, error) {
	return nil, fmt.Errorf("dynamic module loading is not supported on this platform (opening %q)", path)
}
