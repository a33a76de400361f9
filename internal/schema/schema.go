package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Library bundle files ---

// LibraryFile is the root schema of a bundle's library.hcl.
type LibraryFile struct {
	Library *LibraryBlock `hcl:"library,block"`
}

// LibraryBlock carries the metadata of one plugin library.
type LibraryBlock struct {
	Name    string `hcl:"name"`
	Label   string `hcl:"label,optional"`
	Version string `hcl:"version"`
}

// StagesFile is the root schema of a *.stages.hcl manifest. A library may
// expose any number of these; each declares the stage classes it ships, in
// order.
type StagesFile struct {
	StageClasses []string `hcl:"stage_classes"`
}

// --- Localization tables ---

// L10nFile is the root schema of a *.l10n.hcl label table.
type L10nFile struct {
	Locales []*LocaleBlock `hcl:"locale,block"`
}

// LocaleBlock holds the label overrides for one locale tag. Attribute names
// address either a stage ("dev_random") or one of its configuration fields
// ("dev_random.seed").
type LocaleBlock struct {
	Tag  string   `hcl:"tag,label"`
	Body hcl.Body `hcl:",remain"`
}
