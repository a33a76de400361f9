// Package http_client provides the HTTP stage library: an origin that polls
// an HTTP endpoint and a target that posts batches to one. Both stages keep
// mutable client state, so they require a private execution environment.
package http_client

import (
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/library"
	"github.com/vk/stagegridgo/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the library.Module interface for this package.
type Module struct{}

// Register contributes the HTTP stage classes to the bundle.
func (m *Module) Register(b *library.Bundle) {
	b.RegisterClass(&stage.Class{
		ClassName:   "HTTPClientSource",
		Name:        "http_source",
		Version:     "1",
		Label:       "HTTP Client Source",
		Description: "Polls an HTTP endpoint and parses the response payload.",
		Private:     true,
		Configs:     sourceConfigs(),
		New:         func() stage.Stage { return &clientSource{} },
	})

	b.RegisterClass(&stage.Class{
		ClassName:   "HTTPClientTarget",
		Name:        "http_target",
		Version:     "1",
		Label:       "HTTP Client Target",
		Description: "Posts record batches to an HTTP endpoint.",
		Private:     true,
		Configs: []*definition.ConfigDefinition{
			{
				Name:     "url",
				Label:    "Resource URL",
				Type:     cty.String,
				Required: true,
			},
			{
				Name:    "timeout",
				Label:   "Request Timeout",
				Type:    cty.String,
				Default: cty.StringVal("30s"),
			},
		},
		New: func() stage.Stage { return &clientTarget{} },
	})
}

// sourceConfigs declares the origin's fields, including the data-format
// chain the catalog flattens: json_max_object_len activates only when
// json_mode is set, which itself activates only for the json format.
func sourceConfigs() []*definition.ConfigDefinition {
	return []*definition.ConfigDefinition{
		{
			Name:     "url",
			Label:    "Resource URL",
			Type:     cty.String,
			Required: true,
		},
		{
			Name:    "method",
			Label:   "HTTP Method",
			Type:    cty.String,
			Default: cty.StringVal("GET"),
		},
		{
			Name:    "timeout",
			Label:   "Request Timeout",
			Type:    cty.String,
			Default: cty.StringVal("30s"),
		},
		{
			Name:     "data_format",
			Label:    "Data Format",
			Type:     cty.String,
			Default:  cty.StringVal("json"),
			Required: true,
		},
		{
			Name:        "json_mode",
			Label:       "JSON Content",
			Type:        cty.String,
			DependsOn:   "data_format",
			TriggeredBy: []cty.Value{cty.StringVal("json")},
		},
		{
			Name:        "json_max_object_len",
			Label:       "Max JSON Object Length",
			Type:        cty.Number,
			Default:     cty.NumberIntVal(4096),
			DependsOn:   "json_mode",
			TriggeredBy: []cty.Value{cty.StringVal("array"), cty.StringVal("multiple")},
		},
		{
			Name:    "auth_type",
			Label:   "Authentication",
			Type:    cty.String,
			Default: cty.StringVal("none"),
		},
		{
			Name:        "username",
			Label:       "Username",
			Type:        cty.String,
			DependsOn:   "auth_type",
			TriggeredBy: []cty.Value{cty.StringVal("basic")},
		},
		{
			Name:        "password",
			Label:       "Password",
			Type:        cty.String,
			DependsOn:   "auth_type",
			TriggeredBy: []cty.Value{cty.StringVal("basic")},
		},
	}
}
