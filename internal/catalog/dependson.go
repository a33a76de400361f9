package catalog

import (
	"fmt"

	"github.com/vk/stagegridgo/internal/definition"
	"github.com/zclconf/go-cty/cty"
)

// resolveDependsOn flattens every config field's depends_on chain into a
// single map from controlling field to triggering values. The walk follows
// depends_on links backward until a field without one is reached, or until a
// referenced controller is missing from the stage (a broken chain simply
// stops the walk). A field whose chain is empty gets an explicit nil marker
// so consumers can skip evaluation, rather than an empty map.
//
// A cyclic depends_on declaration fails resolution: the walk would otherwise
// never terminate.
func resolveDependsOn(configs map[string]*definition.ConfigDefinition) error {
	for name, cfg := range configs {
		chain := make(map[string][]cty.Value)
		visited := make(map[string]struct{})

		current := cfg
		for current != nil && current.DependsOn != "" {
			if _, seen := visited[current.Name]; seen {
				return fmt.Errorf("config field %q has a cyclic depends_on chain through %q", name, current.Name)
			}
			visited[current.Name] = struct{}{}

			chain[current.DependsOn] = current.TriggeredBy
			current = configs[current.DependsOn]
		}

		if len(chain) == 0 {
			cfg.DependsOnChain = nil
		} else {
			cfg.DependsOnChain = chain
		}
	}
	return nil
}
