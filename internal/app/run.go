package app

import (
	"context"
	"fmt"

	"github.com/vk/stagegridgo/internal/ctxlog"
)

// Run executes the main application logic: it prints a summary of the built
// catalog and, when a status port is configured, serves the catalog over
// HTTP until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	stages := a.service.Stages(ctx)
	fmt.Fprintf(a.outW, "Loaded %d stage definitions:\n", len(stages))
	for _, def := range stages {
		fmt.Fprintf(a.outW, "  %s (%s)\n", def.Key(), def.Label)
	}

	if a.config.StatusPort > 0 {
		a.startStatusServer(ctx)
		<-ctx.Done()
		a.closeStatusServer()
	}

	a.logger.Debug("App.Run method finished.")
	return a.Close()
}

// Close releases the application's resources, shutting the private
// environment pool down. Safe to call more than once.
func (a *App) Close() error {
	return a.service.Close()
}
