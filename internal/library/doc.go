// Package library defines the plugin-library handle the catalog builder
// consumes, and the directory-backed Bundle implementation that combines
// on-disk HCL metadata with compiled-in stage classes.
package library
