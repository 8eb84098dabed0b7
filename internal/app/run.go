package app

import (
	"context"
	"fmt"

	"github.com/vk/modhost/internal/configfile"
	"github.com/vk/modhost/internal/ctxlog"
)

// Run executes one host lifecycle: register built-ins, load the configured
// modules, dump the report if requested, then tear everything down. Module
// load failures are best-effort; only wiring failures abort the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, build := range builtinModules {
		mod := build(a.registry)
		if err := a.registry.Register(mod, nil, ""); err != nil {
			return fmt.Errorf("register built-in module: %w", err)
		}
	}
	a.logger.Debug("Built-in modules registered.", "count", len(builtinModules))

	failures := 0
	for _, entry := range a.hostCfg.Modules {
		if err := a.loader.Load(ctx, entry.Name, entry.Config); err != nil {
			a.logger.Error("Configured module failed to load, continuing.",
				"name", entry.Name, "error", err)
			failures++
		}
	}

	if a.config.ModuleListPath != "" {
		result := configfile.LoadFile(ctx, a.loader, a.config.ModuleListPath)
		a.logger.Debug("Module list processed.",
			"attempted", result.Attempted, "failed", len(result.Failures))
		failures += len(result.Failures)
	}

	a.logger.Info("Modules registered.",
		"count", a.registry.Len(), "names", a.registry.ListNames())

	if a.config.ReportPath != "" {
		a.registry.DumpReport(a.config.ReportPath)
		a.logger.Info("Module report written.", "path", a.config.ReportPath)
	}

	a.teardown()

	if failures > 0 {
		return fmt.Errorf("%d module(s) failed to load", failures)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// teardown drops the creation reference this App holds on every module,
// then clears the registry. Leaks at this point mean some acquirer never
// released; they are reported, never forcibly destroyed.
func (a *App) teardown() {
	for _, name := range a.registry.ListNames() {
		if err := a.registry.Release(name); err != nil {
			a.logger.Warn("Teardown release failed.", "name", name, "error", err)
		}
	}
	leaks := a.registry.ClearAll()
	if len(leaks) == 0 {
		a.logger.Info("All modules unloaded successfully.")
	}
}
