package catalog

import (
	"context"
	"fmt"

	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/isolate"
	"github.com/vk/stagegridgo/internal/stage"
)

// Extractor turns a resolved stage class into a catalog definition. It is a
// collaborator seam: the builder treats extraction as opaque and any failure
// as fatal to the whole build.
type Extractor interface {
	Extract(
		ctx context.Context,
		lib *definition.LibraryDefinition,
		class *stage.Class,
		env isolate.Environment,
		from string,
	) (*definition.StageDefinition, error)
}

// ClassExtractor is the default Extractor: it validates a class's declared
// metadata and assembles the immutable stage definition from it.
type ClassExtractor struct{}

// NewClassExtractor returns the default extractor.
func NewClassExtractor() *ClassExtractor {
	return &ClassExtractor{}
}

// Extract validates the class and builds its definition. The from label
// names the extraction context for error messages.
func (e *ClassExtractor) Extract(
	ctx context.Context,
	lib *definition.LibraryDefinition,
	class *stage.Class,
	env isolate.Environment,
	from string,
) (*definition.StageDefinition, error) {
	if class.Name == "" {
		return nil, fmt.Errorf("stage class %q has no stage name, %s", class.ClassName, from)
	}
	if class.Version == "" {
		return nil, fmt.Errorf("stage class %q has no version, %s", class.ClassName, from)
	}
	if class.New == nil {
		return nil, fmt.Errorf("stage class %q has no factory, %s", class.ClassName, from)
	}

	configs := make(map[string]*definition.ConfigDefinition, len(class.Configs))
	order := make([]string, 0, len(class.Configs))
	for _, cfg := range class.Configs {
		if cfg.Name == "" {
			return nil, fmt.Errorf("stage class %q declares an unnamed config field, %s", class.ClassName, from)
		}
		if _, dup := configs[cfg.Name]; dup {
			return nil, fmt.Errorf("stage class %q declares config field %q twice, %s", class.ClassName, cfg.Name, from)
		}
		if cfg.DependsOn == cfg.Name && cfg.DependsOn != "" {
			return nil, fmt.Errorf("config field %q of stage class %q depends on itself, %s", cfg.Name, class.ClassName, from)
		}
		// Copy so catalog entries never alias the class's declarations.
		dup := *cfg
		configs[cfg.Name] = &dup
		order = append(order, cfg.Name)
	}

	label := class.Label
	if label == "" {
		label = class.Name
	}

	return &definition.StageDefinition{
		Library:      lib.Name,
		LibraryLabel: lib.Label,
		ClassName:    class.ClassName,
		Name:         class.Name,
		Version:      class.Version,
		Label:        label,
		Description:  class.Description,
		Private:      class.Private,
		Configs:      configs,
		ConfigOrder:  order,
		Env:          env,
	}, nil
}
