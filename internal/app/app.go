package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/uniformgrid/internal/builder"
	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	mode       uniform.Mode
	registry   *registry.Registry
	loader     *multiLoader
	httpServer *http.Server

	// grid is the most recently built grid.
	grid  *builder.Grid
	ready atomic.Bool
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// An unknown sink kind or propagation mode panics.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	mode, err := uniform.ParseMode(cfg.Mode)
	if err != nil {
		panic(err)
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All sink modules registered.", "count", len(modules), "kinds", reg.Kinds())

	if err := reg.ValidateKind(cfg.Sink); err != nil {
		panic(err)
	}

	return &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   cfg,
		mode:     mode,
		registry: reg,
		loader:   defaultLoader(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Grid returns the most recently built grid, nil before the first
// successful run. Its sinks are detached when the run ends, so the values
// can be read and changed but nothing is transmitted.
func (a *App) Grid() *builder.Grid {
	return a.grid
}
