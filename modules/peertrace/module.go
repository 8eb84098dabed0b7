// Package peertrace is a built-in module that records every peer-loaded
// notification it receives, giving operators a load-order trace and tests a
// probe for the notification protocol.
package peertrace

import (
	"log/slog"

	"github.com/vk/modhost/internal/capability"
)

// ModuleName is the name peertrace registers under.
const ModuleName = "peertrace"

const version = 1

// Tracer is the capability peertrace exposes beyond the base contract.
type Tracer interface {
	// Peers returns the peer names seen so far, in notification order.
	Peers() []string
}

// Module implements capability.Module. Construct with New.
type Module struct {
	host  capability.Host
	peers []string
}

var _ capability.Module = (*Module)(nil)
var _ Tracer = (*Module)(nil)

// New builds the peertrace module.
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
		Src:      "github.com/vk/modhost/modules/peertrace",
		Revision: "builtin",
	}
}

// OnPeerLoaded implements capability.Module.
func (m *Module) OnPeerLoaded(name string) {
	slog.Info("peertrace: peer module loaded.", "peer", name)
	m.peers = append(m.peers, name)
}

// Peers returns a copy of the recorded notification trace.
func (m *Module) Peers() []string {
	out := make([]string, len(m.peers))
	copy(out, m.peers)
	return out
}
