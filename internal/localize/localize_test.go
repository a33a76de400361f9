package localize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/stagegridgo/internal/definition"
	"golang.org/x/text/language"
)

func writeTable(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func testDefinition() *definition.StageDefinition {
	return &definition.StageDefinition{
		Library: "dev-lib",
		Name:    "dev_random",
		Version: "1",
		Label:   "Dev Random Source",
		Configs: map[string]*definition.ConfigDefinition{
			"seed": {Name: "seed", Label: "Random Seed"},
			"mode": {Name: "mode", Label: "Mode"},
		},
		ConfigOrder: []string{"mode", "seed"},
	}
}

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	dir := t.TempDir()
	writeTable(t, dir, "labels.l10n.hcl", `
locale "fr" {
  dev_random        = "Source aléatoire"
  "dev_random.seed" = "Graine"
}

locale "de" {
  "dev_random.mode" = "Modus"
}
`)
	table, err := Load(context.Background(), []string{dir})
	require.NoError(t, err)
	return table
}

func TestLoad_CollectsLocales(t *testing.T) {
	t.Parallel()
	table := loadTestTable(t)
	assert.Equal(t, []language.Tag{language.MustParse("de"), language.MustParse("fr")}, table.Locales())
}

func TestLoad_NoTablesYieldsPassthrough(t *testing.T) {
	t.Parallel()
	table, err := Load(context.Background(), []string{t.TempDir()})
	require.NoError(t, err)

	def := testDefinition()
	localized, err := table.Localize(context.Background(), def, language.French)
	require.NoError(t, err)
	assert.Same(t, def, localized)
}

func TestLoad_InvalidTagFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTable(t, dir, "bad.l10n.hcl", `
locale "not a tag" {
  x = "y"
}
`)
	_, err := Load(context.Background(), []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid locale tag")
}

func TestLocalize_ReplacesStageAndConfigLabels(t *testing.T) {
	t.Parallel()
	table := loadTestTable(t)
	def := testDefinition()

	localized, err := table.Localize(context.Background(), def, language.French)
	require.NoError(t, err)
	require.NotSame(t, def, localized)
	assert.Equal(t, "Source aléatoire", localized.Label)
	assert.Equal(t, "Graine", localized.Configs["seed"].Label)
	assert.Equal(t, "Mode", localized.Configs["mode"].Label, "fields without an override keep their label")

	// The input definition is untouched.
	assert.Equal(t, "Dev Random Source", def.Label)
	assert.Equal(t, "Random Seed", def.Configs["seed"].Label)
}

func TestLocalize_MatchesRegionalVariants(t *testing.T) {
	t.Parallel()
	table := loadTestTable(t)

	// fr-CA has no table of its own; the matcher falls back to fr.
	localized, err := table.Localize(context.Background(), testDefinition(), language.MustParse("fr-CA"))
	require.NoError(t, err)
	assert.Equal(t, "Source aléatoire", localized.Label)
}

func TestLocalize_NoOverridesReturnsSameDefinition(t *testing.T) {
	t.Parallel()
	table := loadTestTable(t)

	def := &definition.StageDefinition{Library: "lib", Name: "unknown_stage", Version: "1", Label: "Unknown"}
	localized, err := table.Localize(context.Background(), def, language.French)
	require.NoError(t, err)
	assert.Same(t, def, localized, "no matching labels means no copy")
}

func TestLoad_MergesTablesAcrossDirectories(t *testing.T) {
	t.Parallel()
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeTable(t, dirA, "a.l10n.hcl", `
locale "fr" {
  dev_random = "Depuis A"
}
`)
	writeTable(t, dirB, "b.l10n.hcl", `
locale "fr" {
  "dev_random.seed" = "Graine B"
}
`)

	table, err := Load(context.Background(), []string{dirA, dirB})
	require.NoError(t, err)

	localized, err := table.Localize(context.Background(), testDefinition(), language.French)
	require.NoError(t, err)
	assert.Equal(t, "Depuis A", localized.Label)
	assert.Equal(t, "Graine B", localized.Configs["seed"].Label)
}
