package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// ParseLibrary reads a bundle's library.hcl and translates it into the
// agnostic library definition.
func ParseLibrary(ctx context.Context, path string) (*definition.LibraryDefinition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing library metadata file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse library file %s: %w", path, diags)
	}

	var root schema.LibraryFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode library file %s: %w", path, diags)
	}
	if root.Library == nil {
		return nil, fmt.Errorf("library file %s declares no library block", path)
	}
	if root.Library.Name == "" || root.Library.Version == "" {
		return nil, fmt.Errorf("library file %s: name and version are required", path)
	}

	label := root.Library.Label
	if label == "" {
		label = root.Library.Name
	}

	return &definition.LibraryDefinition{
		Name:    root.Library.Name,
		Label:   label,
		Version: root.Library.Version,
	}, nil
}

// ParseStageClasses reads one *.stages.hcl manifest and returns the declared
// stage class names in declaration order.
func ParseStageClasses(ctx context.Context, path string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing stage manifest.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse stage manifest %s: %w", path, diags)
	}

	var root schema.StagesFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode stage manifest %s: %w", path, diags)
	}

	return root.StageClasses, nil
}

// ParseLabelTable reads one *.l10n.hcl file and returns its label overrides
// keyed by locale tag, then by stage or "stage.config" address.
func ParseLabelTable(ctx context.Context, path string) (map[string]map[string]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing localization table.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse localization table %s: %w", path, diags)
	}

	var root schema.L10nFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode localization table %s: %w", path, diags)
	}

	tables := make(map[string]map[string]string, len(root.Locales))
	for _, block := range root.Locales {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locale block %q in %s: %w", block.Tag, path, diags)
		}

		labels := tables[block.Tag]
		if labels == nil {
			labels = make(map[string]string, len(attrs))
			tables[block.Tag] = labels
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid label %q in locale %q of %s: %w", name, block.Tag, path, diags)
			}
			if val.Type() != cty.String {
				return nil, fmt.Errorf("label %q in locale %q of %s must be a string", name, block.Tag, path)
			}
			labels[name] = val.AsString()
		}
	}

	return tables, nil
}
