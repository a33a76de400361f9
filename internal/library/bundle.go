package library

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/fsutil"
	"github.com/vk/stagegridgo/internal/hclcfg"
	"github.com/vk/stagegridgo/internal/isolate"
	"github.com/vk/stagegridgo/internal/stage"
)

const (
	// libraryFileName is the well-known metadata file inside a bundle dir.
	libraryFileName = "library.hcl"

	// manifestSuffix is the well-known resource name suffix of stage
	// manifests inside a bundle dir.
	manifestSuffix = ".stages.hcl"
)

// Bundle is the directory-backed Library implementation: metadata and
// manifests come from HCL files under the bundle directory, stage classes
// from the compiled-in Module registered for the bundle.
type Bundle struct {
	dir     string
	env     isolate.Environment
	classes map[string]*stage.Class
}

// NewBundle creates a bundle over the given directory, running inside the
// given base environment.
func NewBundle(dir string, env isolate.Environment) *Bundle {
	return &Bundle{
		dir:     dir,
		env:     env,
		classes: make(map[string]*stage.Class),
	}
}

// RegisterClass adds a compiled-in stage class to the bundle. Registering
// the same class name twice is a programmer error.
func (b *Bundle) RegisterClass(c *stage.Class) {
	if _, exists := b.classes[c.ClassName]; exists {
		panic(fmt.Sprintf("stage class %q already registered in bundle %q", c.ClassName, b.dir))
	}
	b.classes[c.ClassName] = c
}

// Dir returns the bundle's directory.
func (b *Bundle) Dir() string {
	return b.dir
}

// Definition parses the bundle's library.hcl.
func (b *Bundle) Definition(ctx context.Context) (*definition.LibraryDefinition, error) {
	return hclcfg.ParseLibrary(ctx, filepath.Join(b.dir, libraryFileName))
}

// Manifests lists the bundle's stage manifests in lexical order.
func (b *Bundle) Manifests(ctx context.Context) ([]string, error) {
	paths, err := fsutil.FindFilesBySuffix(b.dir, manifestSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate stage manifests in %s: %w", b.dir, err)
	}
	ctxlog.FromContext(ctx).Debug("Enumerated stage manifests.", "dir", b.dir, "count", len(paths))
	return paths, nil
}

// Class resolves a declared class name against the compiled-in registry.
func (b *Bundle) Class(name string) (*stage.Class, error) {
	c, ok := b.classes[name]
	if !ok {
		return nil, fmt.Errorf("stage class %q is not registered in bundle %q", name, b.dir)
	}
	return c, nil
}

// Environment returns the bundle's base execution environment.
func (b *Bundle) Environment() isolate.Environment {
	return b.env
}
