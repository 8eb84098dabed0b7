// Package sysinfo is a built-in module reporting facts about the hosting
// process: operating system, architecture, CPU count, and Go runtime.
package sysinfo

import (
	"log/slog"
	"runtime"

	"github.com/vk/modhost/internal/capability"
)

// ModuleName is the name sysinfo registers under.
const ModuleName = "sysinfo"

const version = 1

// Report is the capability sysinfo exposes beyond the base module contract.
// Acquire the module and narrow it to Reporter to read one.
type Report struct {
	OS        string
	Arch      string
	CPUs      int
	GoVersion string
}

// Reporter is implemented by modules that can produce a host Report.
type Reporter interface {
	Report() Report
}

// Module implements capability.Module. Construct with New.
type Module struct {
	host capability.Host
}

var _ capability.Module = (*Module)(nil)
var _ Reporter = (*Module)(nil)

// New builds the sysinfo module. The host reference is retained only for
// peer lookups and is non-owning.
func New(host capability.Host) *Module {
	return &Module{host: host}
}

// Name implements capability.Module.
func (m *Module) Name() string { return ModuleName }

// Version implements capability.Module.
func (m *Module) Version() int { return version }

// Describe implements capability.Module.
func (m *Module) Describe() capability.Description {
	return capability.Description{
		Src:      "github.com/vk/modhost/modules/sysinfo",
		Revision: runtime.Version(),
	}
}

// OnPeerLoaded implements capability.Module.
func (m *Module) OnPeerLoaded(name string) {
	slog.Debug("sysinfo: peer module appeared.", "peer", name)
}

// Report returns a snapshot of host runtime facts.
func (m *Module) Report() Report {
	return Report{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
}
