package catalog

import (
	"github.com/vk/stagegridgo/internal/definition"
)

// Catalog is the immutable, process-lifetime registry of every stage
// definition discovered at startup. The ordered list preserves discovery
// order; the keyed map serves identity lookups. Both are frozen once Build
// returns, so readers need no synchronization.
type Catalog struct {
	stages []*definition.StageDefinition
	byKey  map[string]*definition.StageDefinition
}

// FromDefinitions assembles a catalog directly from pre-built definitions,
// bypassing library discovery. Later definitions win key collisions, the
// same way Build resolves them.
func FromDefinitions(defs ...*definition.StageDefinition) *Catalog {
	cat := &Catalog{
		stages: append([]*definition.StageDefinition(nil), defs...),
		byKey:  make(map[string]*definition.StageDefinition, len(defs)),
	}
	for _, def := range defs {
		cat.byKey[def.Key()] = def
	}
	return cat
}

// Stages returns the catalog in discovery order. Callers must treat the
// returned slice and its entries as read-only.
func (c *Catalog) Stages() []*definition.StageDefinition {
	return c.stages
}

// Lookup resolves an identity key to its stage definition. When the same key
// was discovered more than once across libraries, the later discovery wins
// here while Stages still lists every discovery.
func (c *Catalog) Lookup(key string) (*definition.StageDefinition, bool) {
	def, ok := c.byKey[key]
	return def, ok
}

// Len returns the number of cataloged stage definitions.
func (c *Catalog) Len() int {
	return len(c.stages)
}
