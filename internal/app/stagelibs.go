package app

import (
	"github.com/vk/stagegridgo/internal/library"
	"github.com/vk/stagegridgo/stagelibs/dev"
	"github.com/vk/stagegridgo/stagelibs/http_client"
	"github.com/vk/stagegridgo/stagelibs/socketio"
)

// coreLibraries maps bundle directory names to the stage modules compiled
// into the stagegridgo binary. A bundle directory without an entry here has
// no classes to resolve and is skipped at startup.
var coreLibraries = map[string]library.Module{
	"dev-lib":      &dev.Module{},
	"http-lib":     &http_client.Module{},
	"socketio-lib": &socketio.Module{},
}
