// Package localize provides the table-driven localization collaborator used
// by the catalog's locale view. Label overrides ship with library bundles as
// *.l10n.hcl files; lookup picks the best supported locale for a requested
// tag via language matching.
package localize

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/vk/stagegridgo/internal/fsutil"
	"github.com/vk/stagegridgo/internal/hclcfg"
	"golang.org/x/text/language"
)

// tableSuffix is the well-known resource name suffix of label tables inside
// a bundle dir.
const tableSuffix = ".l10n.hcl"

// Table localizes stage definitions from the label tables of the loaded
// library bundles. Immutable after Load.
type Table struct {
	tags    []language.Tag
	matcher language.Matcher
	labels  map[string]map[string]string // tag string -> address -> label
}

// Load scans the given bundle directories for label tables and merges them
// into one localizer. Directories without tables are fine; a deployment with
// no tables at all yields a localizer that returns definitions unchanged.
func Load(ctx context.Context, dirs []string) (*Table, error) {
	logger := ctxlog.FromContext(ctx)

	merged := make(map[string]map[string]string)
	for _, dir := range dirs {
		paths, err := fsutil.FindFilesBySuffix(dir, tableSuffix)
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate localization tables in %s: %w", dir, err)
		}
		for _, path := range paths {
			tables, err := hclcfg.ParseLabelTable(ctx, path)
			if err != nil {
				return nil, err
			}
			for tag, labels := range tables {
				dst := merged[tag]
				if dst == nil {
					dst = make(map[string]string, len(labels))
					merged[tag] = dst
				}
				for address, label := range labels {
					dst[address] = label
				}
			}
		}
	}

	t := &Table{labels: merged}
	tagNames := make([]string, 0, len(merged))
	for name := range merged {
		tagNames = append(tagNames, name)
	}
	sort.Strings(tagNames)
	for _, name := range tagNames {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("invalid locale tag %q in localization tables: %w", name, err)
		}
		t.tags = append(t.tags, tag)
	}
	if len(t.tags) > 0 {
		t.matcher = language.NewMatcher(t.tags)
	}

	logger.Debug("Localization tables loaded.", "locales", len(t.tags))
	return t, nil
}

// Locales returns the locale tags the table has labels for.
func (t *Table) Locales() []language.Tag {
	return t.tags
}

// Localize returns a copy of the definition with stage and config labels
// replaced by the best-matching locale's overrides. Definitions without any
// override for the matched locale are returned as-is.
func (t *Table) Localize(ctx context.Context, def *definition.StageDefinition, tag language.Tag) (*definition.StageDefinition, error) {
	if t.matcher == nil {
		return def, nil
	}

	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No {
		return def, nil
	}
	labels := t.labels[t.tags[idx].String()]
	if len(labels) == 0 {
		return def, nil
	}

	stageLabel, hasStage := labels[def.Name]
	hasConfig := false
	for name := range def.Configs {
		if _, ok := labels[def.Name+"."+name]; ok {
			hasConfig = true
			break
		}
	}
	if !hasStage && !hasConfig {
		return def, nil
	}

	localized := def.Clone()
	if hasStage {
		localized.Label = stageLabel
	}
	for name, cfg := range localized.Configs {
		if label, ok := labels[def.Name+"."+name]; ok {
			cfg.Label = label
		}
	}
	return localized, nil
}
