package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/vk/stagegridgo/internal/catalog"
	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/envpool"
	"github.com/vk/stagegridgo/internal/fsutil"
	"github.com/vk/stagegridgo/internal/isolate"
	"github.com/vk/stagegridgo/internal/library"
	"github.com/vk/stagegridgo/internal/localize"
	"github.com/vk/stagegridgo/internal/stagelib"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	service    *stagelib.Service
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its catalog built and its environment pool
// ready, including its own isolated logger.
func NewApp(outW io.Writer, appConfig *Config, modules map[string]library.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreLibraries
	}

	libs, dirs := discoverLibraries(ctx, appConfig.LibrariesPath, modules)
	logger.Debug("Plugin libraries discovered.", "count", len(libs))

	cat, err := catalog.Build(ctx, libs, catalog.NewClassExtractor())
	if err != nil {
		// A failure to build the catalog is a fatal startup error.
		panic(fmt.Errorf("failed to build stage catalog: %w", err))
	}

	localizer, err := localize.Load(ctx, dirs)
	if err != nil {
		// Bad label tables degrade to an un-localized catalog, they never
		// block startup.
		logger.Warn("Failed to load localization tables, labels will not be localized.", "error", err)
		localizer = &localize.Table{}
	}

	envs := make([]isolate.Environment, 0, len(libs))
	for _, lib := range libs {
		envs = append(envs, lib.Environment())
	}
	pool := envpool.New(envs, appConfig.MaxPrivateEnvs)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		service: stagelib.New(cat, catalog.NewLocaleView(cat, localizer), pool),
	}
}

// discoverLibraries scans the libraries path for bundle directories and
// binds each one to its compiled-in stage module. Directories without a
// registered module are skipped with a warning.
func discoverLibraries(ctx context.Context, path string, modules map[string]library.Module) ([]library.Library, []string) {
	logger := ctxlog.FromContext(ctx)

	dirs, err := fsutil.Subdirs(path)
	if err != nil {
		panic(fmt.Errorf("failed to scan libraries path %s: %w", path, err))
	}

	var libs []library.Library
	var boundDirs []string
	for _, dir := range dirs {
		name := filepath.Base(dir)
		mod, ok := modules[name]
		if !ok {
			logger.Warn("Skipping library directory without a registered module.", "dir", dir)
			continue
		}

		bundle := library.NewBundle(dir, isolate.NewNamespace(name, nil))
		mod.Register(bundle)
		libs = append(libs, bundle)
		boundDirs = append(boundDirs, dir)
	}
	return libs, boundDirs
}

// Service returns the application's stage library service. This is
// primarily for testing.
func (a *App) Service() *stagelib.Service {
	return a.service
}
