package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/hclcfg"
	"github.com/vk/stagegridgo/internal/library"
)

// Build runs the discovery pass over every plugin library, exactly once,
// before the service becomes queryable. Any manifest I/O failure, class
// resolution failure, extraction failure, or per-manifest duplicate identity
// aborts the entire build: there is no partial catalog.
func Build(ctx context.Context, libs []library.Library, extractor Extractor) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)

	cat := &Catalog{
		byKey: make(map[string]*definition.StageDefinition),
	}

	libCount := 0
	stageCount := 0
	start := time.Now()

	for _, lib := range libs {
		libCount++
		libDef, err := lib.Definition(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not extract library definition: %w", err)
		}
		logger.Debug("Loading stages from library.", "library", libDef.Name)

		manifests, err := lib.Manifests(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not enumerate stage manifests of library %q: %w", libDef.Name, err)
		}

		for _, manifest := range manifests {
			classNames, err := hclcfg.ParseStageClasses(ctx, manifest)
			if err != nil {
				return nil, fmt.Errorf("could not load stage manifest of library %q: %w", libDef.Name, err)
			}

			// Identity keys must be unique within one manifest pass; later
			// manifests and libraries may redeclare a key and overwrite the
			// map entry while the ordered list keeps every discovery.
			stagesInManifest := make(map[string]string)

			for _, className := range classNames {
				stageCount++
				class, err := lib.Class(className)
				if err != nil {
					return nil, fmt.Errorf("could not resolve stage class of library %q: %w", libDef.Name, err)
				}

				from := fmt.Sprintf("library=%q", libDef.Name)
				def, err := extractor.Extract(ctx, libDef, class, lib.Environment(), from)
				if err != nil {
					return nil, fmt.Errorf("could not extract stage definition from library %q: %w", libDef.Name, err)
				}

				key := def.Key()
				if prev, dup := stagesInManifest[key]; dup {
					return nil, fmt.Errorf(
						"library %q contains more than one definition for stage %q, class %q and class %q",
						libDef.Name, key, prev, className,
					)
				}
				stagesInManifest[key] = className

				if err := resolveDependsOn(def.Configs); err != nil {
					return nil, fmt.Errorf("invalid config dependencies in stage %q of library %q: %w", key, libDef.Name, err)
				}

				cat.stages = append(cat.stages, def)
				cat.byKey[key] = def
				logger.Debug("Loaded stage.", "key", key, "class", className)
			}
		}
	}

	logger.Info("Stage catalog built.",
		"libraries", libCount,
		"stages", stageCount,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
	return cat, nil
}
