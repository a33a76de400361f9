package definition

import (
	"encoding/json"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// The JSON shapes below back the status server's /stages endpoint. cty values
// carry their own types, so they are rendered through cty/json rather than
// encoding/json's reflection.

type configJSON struct {
	Name           string                       `json:"name"`
	Label          string                       `json:"label,omitempty"`
	Description    string                       `json:"description,omitempty"`
	Type           string                       `json:"type"`
	Default        json.RawMessage              `json:"default,omitempty"`
	Required       bool                         `json:"required"`
	DependsOn      string                       `json:"dependsOn,omitempty"`
	TriggeredBy    []json.RawMessage            `json:"triggeredBy,omitempty"`
	DependsOnChain map[string][]json.RawMessage `json:"dependsOnChain,omitempty"`
}

type stageJSON struct {
	Library      string        `json:"library"`
	LibraryLabel string        `json:"libraryLabel,omitempty"`
	Name         string        `json:"name"`
	Version      string        `json:"version"`
	Label        string        `json:"label,omitempty"`
	Description  string        `json:"description,omitempty"`
	ClassName    string        `json:"className"`
	Private      bool          `json:"privateEnvironment"`
	Configs      []*configJSON `json:"configs"`
}

func marshalValue(v cty.Value) (json.RawMessage, error) {
	if v == cty.NilVal {
		return nil, nil
	}
	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func marshalValues(vals []cty.Value) ([]json.RawMessage, error) {
	if vals == nil {
		return nil, nil
	}
	out := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		raw, err := marshalValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// MarshalJSON renders the config definition, including its resolved
// depends-on chain, for catalog consumers.
func (c *ConfigDefinition) MarshalJSON() ([]byte, error) {
	def, err := marshalValue(c.Default)
	if err != nil {
		return nil, fmt.Errorf("config %q: marshaling default: %w", c.Name, err)
	}
	triggered, err := marshalValues(c.TriggeredBy)
	if err != nil {
		return nil, fmt.Errorf("config %q: marshaling triggered_by: %w", c.Name, err)
	}
	var chain map[string][]json.RawMessage
	if c.DependsOnChain != nil {
		chain = make(map[string][]json.RawMessage, len(c.DependsOnChain))
		for controller, vals := range c.DependsOnChain {
			raw, err := marshalValues(vals)
			if err != nil {
				return nil, fmt.Errorf("config %q: marshaling chain for %q: %w", c.Name, controller, err)
			}
			chain[controller] = raw
		}
	}

	typeName := "any"
	if c.Type != cty.NilType {
		typeName = c.Type.FriendlyName()
	}

	return json.Marshal(&configJSON{
		Name:           c.Name,
		Label:          c.Label,
		Description:    c.Description,
		Type:           typeName,
		Default:        def,
		Required:       c.Required,
		DependsOn:      c.DependsOn,
		TriggeredBy:    triggered,
		DependsOnChain: chain,
	})
}

// MarshalJSON renders the stage definition with configs in declaration order.
// The execution environment is a capability, not data, and is omitted.
func (d *StageDefinition) MarshalJSON() ([]byte, error) {
	configs := make([]*configJSON, 0, len(d.Configs))
	for _, name := range d.ConfigOrder {
		cfg, ok := d.Configs[name]
		if !ok {
			continue
		}
		raw, err := cfg.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var rendered configJSON
		if err := json.Unmarshal(raw, &rendered); err != nil {
			return nil, err
		}
		configs = append(configs, &rendered)
	}

	return json.Marshal(&stageJSON{
		Library:      d.Library,
		LibraryLabel: d.LibraryLabel,
		Name:         d.Name,
		Version:      d.Version,
		Label:        d.Label,
		Description:  d.Description,
		ClassName:    d.ClassName,
		Private:      d.Private,
		Configs:      configs,
	})
}
