package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/modhost/internal/hostcfg"
	"github.com/vk/modhost/internal/loader"
	"github.com/vk/modhost/internal/registry"
	"github.com/vk/modhost/internal/resolve"
)

// App wires the registry, resolver, and loader together for one host run.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   *loader.Loader
	hostCfg  *hostcfg.Config
	config   *Config
}

// NewApp constructs a fully wired App: host configuration is read first so
// its log settings and search paths take effect before anything loads.
// The Opener is injected so tests and foreign-ABI hosts can substitute the
// dynamic loading primitive.
func NewApp(outW io.Writer, cfg *Config, opener loader.Opener) (*App, error) {
	hostCfg := &hostcfg.Config{}
	if cfg.HostConfigPath != "" {
		parsed, err := hostcfg.LoadFile(cfg.HostConfigPath)
		if err != nil {
			return nil, fmt.Errorf("host configuration: %w", err)
		}
		hostCfg = parsed
	}

	logger := newLogger(
		firstNonEmpty(cfg.LogLevel, hostCfg.LogLevel, "info"),
		firstNonEmpty(cfg.LogFormat, hostCfg.LogFormat, "text"),
		outW,
	)
	logger.Debug("Logger configured successfully.")

	reg := registry.New(logger)
	res := resolve.New(resolve.CurrentPlatform(), hostCfg.SearchPaths...)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   loader.New(opener, res, reg),
		hostCfg:  hostCfg,
		config:   cfg,
	}, nil
}

// Registry returns the App's registry. Primarily for tests.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
