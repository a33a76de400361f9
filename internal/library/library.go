package library

import (
	"context"

	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/isolate"
	"github.com/vk/stagegridgo/internal/stage"
)

// Library is one opaque plugin library handle consumed by the catalog
// builder. Implementations expose metadata extraction, stage manifests, and
// class resolution scoped to the library.
type Library interface {
	// Definition extracts the library's metadata.
	Definition(ctx context.Context) (*definition.LibraryDefinition, error)

	// Manifests returns the library's stage-manifest resources, in a fixed
	// enumeration order. A library may expose zero or more.
	Manifests(ctx context.Context) ([]string, error)

	// Class resolves a stage class name declared in a manifest to its
	// compiled-in class.
	Class(name string) (*stage.Class, error)

	// Environment returns the library's base execution environment.
	Environment() isolate.Environment
}

// Module is implemented by a compiled-in stage package to contribute its
// classes to a library bundle during startup.
type Module interface {
	Register(b *Bundle)
}
