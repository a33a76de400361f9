// Package catalog builds and serves the immutable stage catalog.
//
// Build runs once during startup: it walks every plugin library's stage
// manifests, resolves and extracts each declared class into a
// StageDefinition, enforces per-manifest identity uniqueness, and flattens
// config depends_on chains. Any failure aborts the whole build; the process
// cannot run on a partial catalog.
//
// LocaleView layers a per-locale memoized, request-coalesced view on top of
// the built catalog for UI-facing listings.
package catalog
