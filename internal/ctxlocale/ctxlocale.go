// Package ctxlocale carries the caller's locale through context.Context.
//
// The stage library localizes its catalog view per request. Rather than
// consulting a process-global "current locale", callers attach a
// language.Tag to their context and every query downstream observes it.
// A context without a locale means "serve the raw, un-localized catalog".
package ctxlocale

import (
	"context"

	"golang.org/x/text/language"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// localeKey is the key for the language.Tag in a context.Context.
var localeKey = key{}

// WithLocale returns a new context with the provided locale embedded.
func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, localeKey, tag)
}

// FromContext extracts the locale from a context. The second return value
// reports whether a locale was set at all.
func FromContext(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(localeKey).(language.Tag)
	return tag, ok
}
