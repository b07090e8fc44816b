// Package config handles quark's own configuration: how projects are
// built and where bundles go. It layers, lowest first, the embedded
// defaults, the user config file, the project's .quark.toml, QUARK_*
// environment variables and explicit overrides (command-line flags).
//
// Bundle metadata itself is not configuration; it lives in the project
// manifest and is read by the settings package.
package config
