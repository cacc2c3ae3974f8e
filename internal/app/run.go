package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/uniformgrid/internal/builder"
	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// Run executes the main application logic based on the configuration. With
// Watch set it keeps reloading until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer a.closeHealthCheckServer()

	if err := a.runOnce(ctx); err != nil {
		if !a.config.Watch {
			return err
		}
		a.logger.Error("Run failed, waiting for the definitions to change.", "error", err)
	}

	if a.config.Watch {
		return a.watch(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// runOnce loads the definitions, builds the grid, applies the sets, flushes
// every root to the sink and prints the value table.
func (a *App) runOnce(ctx context.Context) (err error) {
	model, err := a.loader.Load(ctx, a.config.GridPath)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}
	a.logger.Debug("Definitions loaded.", "uniforms", len(model.Uniforms))

	session, err := a.registry.Open(ctx, a.config.Sink, registry.Options{
		Out:      a.outW,
		Settings: a.config.SinkSettings,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close %s sink: %w", a.config.Sink, cerr))
		}
	}()

	grid, err := builder.Build(ctx, model, session, uniform.WithMode(a.mode))
	if err != nil {
		return fmt.Errorf("failed to build uniform graph: %w", err)
	}
	// Runs before the session closes.
	defer func() {
		if derr := grid.Detach(); derr != nil {
			err = errors.Join(err, derr)
		}
	}()

	if a.config.Settle {
		if err := grid.Settle(); err != nil {
			return err
		}
		a.logger.Debug("Derived uniforms settled.")
	}

	for _, set := range a.config.Sets {
		if err := grid.Apply(set); err != nil {
			return err
		}
		a.logger.Debug("Assignment applied.", "set", set)
	}

	a.logger.Info("🚀 Flushing uniforms...", "sink", a.config.Sink, "roots", len(grid.Roots()))
	if err := grid.FlushRoots(); err != nil {
		return err
	}
	a.logger.Info("🏁 Flush finished.", "mutations", grid.Graph().Mutations())

	a.grid = grid
	a.ready.Store(true)
	return printTable(a.outW, grid.Table())
}

// printTable writes the final value of every uniform, one aligned row each.
func printTable(w io.Writer, rows []builder.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tLOCATION\tKIND\tVALUE")
	for _, r := range rows {
		kind := "root"
		if r.Derived {
			kind = "derived"
		}
		if r.Partial {
			kind += ",partial"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.Name, r.Type, r.Location, kind, r.Value)
	}
	return tw.Flush()
}
