// Package definition holds the format-agnostic model of everything the stage
// library catalogs: plugin library metadata, stage definitions, and their
// configuration fields.
//
// Definitions are built once during startup by the catalog builder and are
// immutable afterwards. The only sanctioned way to derive a variant is an
// explicit copy (WithEnvironment for execution specialization, Clone for
// localization), so concurrent readers never need synchronization.
package definition
