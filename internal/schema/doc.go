// Package schema declares the HCL file schemas of a plugin library bundle:
// the library metadata file, the stage-class manifests, and the optional
// localization tables. The hclcfg package decodes these structs and
// translates them into the definition model.
package schema
