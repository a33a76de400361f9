// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the startup lifecycle that discovers the
// plugin libraries, builds the stage catalog, and serves it, decoupled from
// any specific entrypoint like a CLI or server.
package app
