package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/stagegridgo/internal/ctxlocale"
	"golang.org/x/text/language"
)

// healthHandler reports process liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// stagesHandler serves the stage catalog as JSON. A ?locale= query parameter
// selects the localized view; without one the raw catalog is served.
func (a *App) stagesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if raw := r.URL.Query().Get("locale"); raw != "" {
		tag, err := language.Parse(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid locale %q", raw), http.StatusBadRequest)
			return
		}
		ctx = ctxlocale.WithLocale(ctx, tag)
	}

	stages := a.service.Stages(ctx)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stages); err != nil {
		a.logger.Error("Failed to encode stage list.", "error", err)
	}
}

// startStatusServer initializes and runs the status HTTP server.
func (a *App) startStatusServer(ctx context.Context) {
	a.logger.Debug("Configuring status server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/stages", a.stagesHandler)

	addr := fmt.Sprintf(":%d", a.config.StatusPort)
	a.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		a.logger.Info("Status server starting", "address", fmt.Sprintf("http://localhost%s/stages", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeStatusServer() {
	if a.httpServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("Shutting down status server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Status server shutdown failed", "error", err)
		return
	}
	a.logger.Debug("Status server shut down gracefully.")
}
