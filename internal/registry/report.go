package registry

import (
	"fmt"
	"os"
	"runtime"
)

// Info is the composed description of one registered module: registry-side
// facts (name, origin path, outstanding references) plus the module's own
// self-description.
type Info struct {
	Name       string
	SourcePath string
	Version    int
	Src        string
	Revision   string
	Refs       int
}

// runtimeDescriptor identifies the hosting runtime itself. It closes every
// report so a dump always states which runtime produced it.
type runtimeDescriptor struct {
	Name    string
	Version string
}

func hostRuntime() runtimeDescriptor {
	return runtimeDescriptor{Name: "go-runtime", Version: runtime.Version()}
}

// Describe composes the Info for the named module without touching its
// reference count. The second return is false when the name is unknown.
func (r *Registry) Describe(name string) (Info, bool) {
	rec, ok := r.records[name]
	if !ok {
		return Info{}, false
	}
	desc := rec.instance.Describe()
	return Info{
		Name:       name,
		SourcePath: rec.sourcePath,
		Version:    rec.instance.Version(),
		Src:        desc.Src,
		Revision:   desc.Revision,
		Refs:       rec.refs,
	}, true
}

// DumpReport writes a module report to the given path: one element per
// registered module plus a trailing descriptor for the hosting runtime.
//
// The dump is diagnostic-only and best-effort. A destination that cannot be
// opened or written is logged and swallowed, never surfaced to the caller.
func (r *Registry) DumpReport(path string) {
	f, err := os.Create(path)
	if err != nil {
		r.logger.Warn("Skipping module report, destination not writable.", "path", path, "error", err)
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "  <modules>\n")
	for _, name := range r.ListNames() {
		info, ok := r.Describe(name)
		if !ok {
			continue
		}
		fmt.Fprintf(f,
			"    <module>\n"+
				"      <name>%s</name>\n"+
				"      <src>%s</src>\n"+
				"      <revision>%s</revision>\n"+
				"    </module>\n",
			info.Name, info.Src, info.Revision)
	}
	rt := hostRuntime()
	fmt.Fprintf(f,
		"    <module>\n"+
			"      <name>%s</name>\n"+
			"      <version>%s</version>\n"+
			"    </module>\n",
		rt.Name, rt.Version)
	fmt.Fprintf(f, "  </modules>\n")
}
