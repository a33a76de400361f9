// Package dev provides the development stage library: a synthetic record
// origin and a discarding target, useful for wiring and smoke-testing
// pipelines without external systems.
package dev

import (
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/library"
	"github.com/vk/stagegridgo/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the library.Module interface for this package.
type Module struct{}

// Register contributes the dev stage classes to the bundle.
func (m *Module) Register(b *library.Bundle) {
	b.RegisterClass(&stage.Class{
		ClassName:   "DevRandomSource",
		Name:        "dev_random",
		Version:     "1",
		Label:       "Dev Random Source",
		Description: "Generates synthetic records for pipeline development.",
		Configs: []*definition.ConfigDefinition{
			{
				Name:     "mode",
				Label:    "Generation Mode",
				Type:     cty.String,
				Default:  cty.StringVal("random"),
				Required: true,
			},
			{
				Name:        "seed",
				Label:       "Seed",
				Type:        cty.Number,
				DependsOn:   "mode",
				TriggeredBy: []cty.Value{cty.StringVal("random")},
			},
			{
				Name:    "fields",
				Label:   "Fields per Record",
				Type:    cty.Number,
				Default: cty.NumberIntVal(3),
			},
		},
		New: func() stage.Stage { return &randomSource{} },
	})

	b.RegisterClass(&stage.Class{
		ClassName:   "DevTrashTarget",
		Name:        "dev_trash",
		Version:     "1",
		Label:       "Dev Trash Target",
		Description: "Discards every record it receives.",
		Configs: []*definition.ConfigDefinition{
			{
				Name:    "log_records",
				Label:   "Log Discarded Records",
				Type:    cty.Bool,
				Default: cty.False,
			},
		},
		New: func() stage.Stage { return &trashTarget{} },
	})
}
