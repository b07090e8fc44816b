// Package buildsys talks to the build tool of the project being bundled.
//
// A BuildSystem builds the project, reports its package metadata (name,
// version, authors, the "bundle" metadata section) and says where build
// artifacts land. Three implementations exist:
//
//   - Cargo: drives `cargo build` and parses `cargo metadata` JSON
//   - Go: drives `go build` and reads package metadata from a quark manifest
//   - Prebuilt: reads a quark manifest and only checks the binary exists
//
// A quark manifest is quark.toml (or quark.yaml / quark.yml) with a
// [package] table, an optional [package.metadata.bundle] table and an
// optional [workspace] members list. Detect picks the implementation for a
// project directory.
//
// Subprocesses run through a Runner so tests can replace them.
package buildsys
