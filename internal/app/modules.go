package app

import (
	"github.com/vk/modhost/internal/capability"
	"github.com/vk/modhost/modules/peertrace"
	"github.com/vk/modhost/modules/sysinfo"
)

// builtinModules lists the modules compiled into the modhost binary. They
// are registered programmatically at startup with no destructor; each
// manages its own disposal.
var builtinModules = []func(host capability.Host) capability.Module{
	func(h capability.Host) capability.Module { return sysinfo.New(h) },
	func(h capability.Host) capability.Module { return peertrace.New(h) },
}
