package catalog

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
	"github.com/vk/stagegridgo/internal/ctxlocale"
	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/definition"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
)

// Localizer produces a localized copy of a stage definition. The catalog
// treats localization as an opaque collaborator that may fail.
type Localizer interface {
	Localize(ctx context.Context, def *definition.StageDefinition, tag language.Tag) (*definition.StageDefinition, error)
}

// LocaleView serves per-locale views of the catalog. The first request for a
// locale localizes every entry and memoizes the result for the process
// lifetime; concurrent first requests for the same locale are coalesced into
// a single localization pass. The set of locales a deployment serves is
// small and closed, so the cache never evicts.
type LocaleView struct {
	catalog   *Catalog
	localizer Localizer

	group singleflight.Group
	views *gocache.Cache
}

// NewLocaleView creates the locale view cache over a built catalog.
func NewLocaleView(cat *Catalog, localizer Localizer) *LocaleView {
	return &LocaleView{
		catalog:   cat,
		localizer: localizer,
		views:     gocache.New(gocache.NoExpiration, 0),
	}
}

// Stages returns the stage list for the caller's locale. Without a locale in
// the context it returns the raw catalog order directly. When localization
// fails the un-localized list is served instead; the failure is logged, not
// propagated.
func (v *LocaleView) Stages(ctx context.Context) []*definition.StageDefinition {
	tag, ok := ctxlocale.FromContext(ctx)
	if !ok {
		return v.catalog.Stages()
	}

	key := tag.String()
	if cached, ok := v.views.Get(key); ok {
		return cached.([]*definition.StageDefinition)
	}

	result, err, _ := v.group.Do(key, func() (any, error) {
		// A racing caller may have populated the cache while we waited for
		// the flight slot.
		if cached, ok := v.views.Get(key); ok {
			return cached, nil
		}

		list := make([]*definition.StageDefinition, 0, v.catalog.Len())
		for _, def := range v.catalog.Stages() {
			localized, err := v.localizer.Localize(ctx, def, tag)
			if err != nil {
				return nil, err
			}
			list = append(list, localized)
		}

		v.views.Set(key, list, gocache.NoExpiration)
		return list, nil
	})
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to localize stage list, serving the un-localized catalog.",
			"locale", key, "error", err)
		return v.catalog.Stages()
	}

	return result.([]*definition.StageDefinition)
}
