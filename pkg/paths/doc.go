// Package paths provides centralized path handling for quark.
//
// It resolves two kinds of locations:
//
//   - The project root: the directory holding the project manifest
//     (Cargo.toml, go.mod, quark.toml or quark.yaml). It is discovered by
//     walking up from the working directory unless QUARK_PROJECT_ROOT is set.
//   - Per-user directories following the XDG Base Directory specification
//     (config, state, cache), each overridable through an environment
//     variable.
//
// # Environment Variables
//
//   - QUARK_PROJECT_ROOT: explicit project root
//   - QUARK_CONFIG_DIR: override $XDG_CONFIG_HOME/quark
//   - QUARK_STATE_DIR: override $XDG_STATE_HOME/quark (log file lives here)
//   - QUARK_CACHE_DIR: override $XDG_CACHE_HOME/quark
package paths
