package definition

import (
	"github.com/vk/stagegridgo/internal/isolate"
	"github.com/zclconf/go-cty/cty"
)

// LibraryDefinition is the metadata of one plugin library, extracted from its
// bundle's library.hcl.
type LibraryDefinition struct {
	Name    string
	Label   string
	Version string
}

// ConfigDefinition describes a single configuration field of a stage.
type ConfigDefinition struct {
	Name        string
	Label       string
	Description string
	Type        cty.Type
	Default     cty.Value // cty.NilVal when the field has no default
	Required    bool

	// DependsOn names the field that controls whether this field is active,
	// and TriggeredBy lists the controller values that activate it.
	DependsOn   string
	TriggeredBy []cty.Value

	// DependsOnChain maps every controlling field in this field's activation
	// chain, direct or transitive, to the values that trigger the dependent
	// link. A nil map is the explicit "no activation chain" marker that lets
	// consumers skip evaluation entirely; it is not the same as an empty map.
	DependsOnChain map[string][]cty.Value
}

// clone returns a copy of the config definition. Slices and the chain map are
// shared: they are never mutated after catalog construction.
func (c *ConfigDefinition) clone() *ConfigDefinition {
	dup := *c
	return &dup
}

// StageDefinition is one catalog entry: an immutable description of a stage
// extracted from a plugin library. The identity triple (Library, Name,
// Version) forms its catalog key.
type StageDefinition struct {
	Library      string
	LibraryLabel string
	ClassName    string
	Name         string
	Version      string
	Label        string
	Description  string

	// Private marks stages that must execute inside their own isolated
	// environment instead of the library's shared one.
	Private bool

	Configs map[string]*ConfigDefinition

	// ConfigOrder preserves the declaration order of Configs for rendering.
	ConfigOrder []string

	// Env is the execution environment the stage was extracted against: the
	// library's shared environment for catalog entries, or a borrowed private
	// one on specialized copies (see WithEnvironment).
	Env isolate.Environment
}

// Key returns the catalog key for the identity triple.
func Key(library, name, version string) string {
	return library + ":" + name + ":" + version
}

// Key returns the stage's catalog key.
func (d *StageDefinition) Key() string {
	return Key(d.Library, d.Name, d.Version)
}

// WithEnvironment returns a specialized copy of the definition carrying the
// given execution environment. The receiver, which may be a shared catalog
// entry, is left untouched.
func (d *StageDefinition) WithEnvironment(env isolate.Environment) *StageDefinition {
	dup := *d
	dup.Env = env
	return &dup
}

// Clone returns a copy of the definition with its own Configs map and config
// copies, safe to mutate by localizers. The environment reference is shared.
func (d *StageDefinition) Clone() *StageDefinition {
	dup := *d
	dup.Configs = make(map[string]*ConfigDefinition, len(d.Configs))
	for name, cfg := range d.Configs {
		dup.Configs[name] = cfg.clone()
	}
	dup.ConfigOrder = append([]string(nil), d.ConfigOrder...)
	return &dup
}
