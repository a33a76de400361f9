package stagelib

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/stagegridgo/internal/catalog"
	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/envpool"
	"github.com/vk/stagegridgo/internal/isolate"
)

// ErrStageNotFound is returned by Stage for an identity triple that is not
// in the catalog.
var ErrStageNotFound = errors.New("stage not found")

// Service is the stage library facade: it exposes the catalog, resolves
// stages by identity, and brokers private execution environments. It owns
// the catalog and the pool exclusively.
type Service struct {
	catalog *catalog.Catalog
	views   *catalog.LocaleView
	pool    *envpool.Pool
}

// New composes the service from its built parts.
func New(cat *catalog.Catalog, views *catalog.LocaleView, pool *envpool.Pool) *Service {
	return &Service{catalog: cat, views: views, pool: pool}
}

// Stages returns the stage list localized for the caller's locale context,
// or the raw catalog order when no locale is set.
func (s *Service) Stages(ctx context.Context) []*definition.StageDefinition {
	return s.views.Stages(ctx)
}

// Stage resolves an identity triple. With forExecution set, a stage that
// requires isolation is returned as a specialized copy carrying a freshly
// borrowed private environment; the catalog entry itself is never touched.
func (s *Service) Stage(ctx context.Context, library, name, version string, forExecution bool) (*definition.StageDefinition, error) {
	key := definition.Key(library, name, version)
	def, ok := s.catalog.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStageNotFound, key)
	}

	if forExecution && def.Private {
		env, err := s.borrowEnvironment(ctx, def)
		if err != nil {
			return nil, err
		}
		return def.WithEnvironment(env), nil
	}
	return def, nil
}

func (s *Service) borrowEnvironment(ctx context.Context, def *definition.StageDefinition) (isolate.Environment, error) {
	logger := ctxlog.FromContext(ctx)
	key := def.Env.Key()

	env, err := s.pool.Borrow(key)
	if err != nil {
		logger.Warn("Could not get a private environment.",
			"key", key, "stage", def.Name, "active", s.pool.Active())
		return nil, fmt.Errorf("could not get a private environment for stage %q: %w", def.Name, err)
	}

	logger.Debug("Borrowed a private environment.",
		"key", key, "stage", def.Name, "active", s.pool.Active())
	return env, nil
}

// ReleaseEnvironment gives a borrowed environment back. Environments that
// report themselves non-private never came from the pool and are ignored.
// Failures to reclaim are logged, never surfaced: the caller's own request
// already succeeded or failed on its own terms.
func (s *Service) ReleaseEnvironment(ctx context.Context, env isolate.Environment) {
	if env == nil || !env.Private() {
		return
	}

	logger := ctxlog.FromContext(ctx)
	key := env.Key()
	if err := s.pool.Return(key, env); err != nil {
		logger.Warn("Could not return a private environment.",
			"key", key, "active", s.pool.Active(), "error", err)
		return
	}
	logger.Debug("Returned a private environment.", "key", key, "active", s.pool.Active())
}

// Close shuts the environment pool down. Safe to call more than once.
func (s *Service) Close() error {
	return s.pool.Close()
}
