// Package resolve maps a logical module name to the file the loader should
// open, using the platform's shared-library naming and search conventions.
package resolve

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vk/modhost/internal/ctxlog"
)

// Platform is one OS family's decoration triple: how a bare module name is
// turned into a filename, and where the ambient search list lives.
type Platform struct {
	// Prefix and Suffix decorate a bare name into a library filename.
	Prefix string
	Suffix string
	// SearchEnv names the environment variable holding the search list.
	SearchEnv string
	// ListSep separates directories inside the search list.
	ListSep string
}

var platforms = map[string]Platform{
	"linux":   {Prefix: "lib", Suffix: ".so", SearchEnv: "LD_LIBRARY_PATH", ListSep: ":"},
	"darwin":  {Prefix: "lib", Suffix: ".dylib", SearchEnv: "DYLD_LIBRARY_PATH", ListSep: ":"},
	"windows": {Prefix: "", Suffix: ".dll", SearchEnv: "PATH", ListSep: ";"},
}

// CurrentPlatform returns the triple for the running OS. Unknown OS
// families get the linux conventions, the least surprising default for a
// dlopen-style loader.
func CurrentPlatform() Platform {
	if p, ok := platforms[runtime.GOOS]; ok {
		return p
	}
	return platforms["linux"]
}

// Resolver turns logical module names into candidate file paths. Construct
// with New; the zero value has no platform triple.
type Resolver struct {
	plat Platform
	// searchPaths are consulted before the environment search list. They
	// come from host configuration and are optional.
	searchPaths []string
}

// New builds a resolver for the given platform triple with optional
// configured search paths, consulted ahead of the environment list.
func New(plat Platform, searchPaths ...string) *Resolver {
	return &Resolver{plat: plat, searchPaths: searchPaths}
}

// Decorate applies the platform's filename decoration to a bare name.
func (r *Resolver) Decorate(name string) string {
	return r.plat.Prefix + name + r.plat.Suffix
}

// Resolve maps a logical name to the path the loader should open:
//
//  1. A name that is itself an openable file is used unchanged.
//  2. Otherwise the decorated filename is probed in each configured search
//     path, then in each directory of the platform search-list environment
//     variable, in order; the first hit wins.
//  3. With no hit anywhere, the decorated name is returned as-is so the
//     platform's own default search can still find it — local resolution
//     failing is not itself fatal.
func (r *Resolver) Resolve(ctx context.Context, name string) string {
	logger := ctxlog.FromContext(ctx)

	if fileExists(name) {
		return name
	}

	candidate := r.Decorate(name)
	for _, dir := range r.searchDirs() {
		if dir == "" {
			continue
		}
		probe := filepath.Join(dir, candidate)
		if fileExists(probe) {
			logger.Debug("Module file found on search list.", "name", name, "path", probe)
			return probe
		}
	}

	logger.Debug("Module file not found locally, deferring to loader default search.",
		"name", name, "candidate", candidate)
	return candidate
}

// searchDirs returns configured paths first, then the environment list in
// its original order.
func (r *Resolver) searchDirs() []string {
	dirs := make([]string, 0, len(r.searchPaths))
	dirs = append(dirs, r.searchPaths...)
	if list := os.Getenv(r.plat.SearchEnv); list != "" {
		dirs = append(dirs, strings.Split(list, r.plat.ListSep)...)
	}
	return dirs
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
