// Package socketio provides the Socket.IO stage library: an origin that
// subscribes to a Socket.IO event stream. The client keeps a live connection
// and per-socket listener state, so the stage requires a private execution
// environment.
package socketio

import (
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/library"
	"github.com/vk/stagegridgo/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the library.Module interface for this package.
type Module struct{}

// Register contributes the Socket.IO stage classes to the bundle.
func (m *Module) Register(b *library.Bundle) {
	b.RegisterClass(&stage.Class{
		ClassName:   "SocketIOSource",
		Name:        "socketio_source",
		Version:     "1",
		Label:       "Socket.IO Source",
		Description: "Subscribes to a Socket.IO namespace and emits received events as records.",
		Private:     true,
		Configs: []*definition.ConfigDefinition{
			{
				Name:     "url",
				Label:    "Server URL",
				Type:     cty.String,
				Required: true,
			},
			{
				Name:    "namespace",
				Label:   "Namespace",
				Type:    cty.String,
				Default: cty.StringVal("/"),
			},
			{
				Name:     "on_event",
				Label:    "Event Name",
				Type:     cty.String,
				Required: true,
			},
			{
				Name:    "connect_timeout",
				Label:   "Connect Timeout",
				Type:    cty.String,
				Default: cty.StringVal("10s"),
			},
			{
				Name:    "insecure_skip_verify",
				Label:   "Skip TLS Verification",
				Type:    cty.Bool,
				Default: cty.False,
			},
		},
		New: func() stage.Stage { return &source{} },
	})
}
