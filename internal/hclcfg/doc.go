// Package hclcfg is the HCL-specific loading layer for plugin library
// bundles. It parses the files declared in the schema package and translates
// them into the format-agnostic definition model, keeping every other package
// free of HCL details.
package hclcfg
