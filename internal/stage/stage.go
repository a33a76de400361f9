// Package stage defines the contract between plugin libraries and the engine
// core: the Stage runtime interface and the Class descriptor the catalog
// builder extracts definitions from.
package stage

import (
	"context"

	"github.com/vk/stagegridgo/internal/definition"
	"github.com/zclconf/go-cty/cty"
)

// Stage is a unit of pluggable pipeline processing logic. The engine core
// only discovers and catalogs stages; scheduling and record processing live
// in the execution layer above it.
type Stage interface {
	// Init prepares the stage for execution with its resolved configuration.
	Init(ctx context.Context, cfg Config) error

	// Destroy releases everything Init acquired.
	Destroy(ctx context.Context) error
}

// Config carries a stage's resolved configuration values, keyed by field
// name as declared in its Class.
type Config map[string]cty.Value

// String returns the named field as a string.
func (c Config) String(name string) (string, bool) {
	v, ok := c[name]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

// Bool returns the named field as a bool.
func (c Config) Bool(name string) (bool, bool) {
	v, ok := c[name]
	if !ok || v.IsNull() || v.Type() != cty.Bool {
		return false, false
	}
	return v.True(), true
}

// Int returns the named field as an int64.
func (c Config) Int(name string) (int64, bool) {
	v, ok := c[name]
	if !ok || v.IsNull() || v.Type() != cty.Number {
		return 0, false
	}
	f, _ := v.AsBigFloat().Int64()
	return f, true
}

// Class describes one compiled-in stage class of a plugin library. It is the
// Go analog of an annotated stage class: the declared metadata the extractor
// turns into a catalog StageDefinition, plus the factory that instantiates
// the stage.
type Class struct {
	// ClassName is the identifier stage manifests reference.
	ClassName string

	Name        string
	Version     string
	Label       string
	Description string

	// Private marks the class as requiring an isolated execution environment.
	Private bool

	// Configs declares the configuration fields, in order.
	Configs []*definition.ConfigDefinition

	// New instantiates the stage.
	New func() Stage
}
