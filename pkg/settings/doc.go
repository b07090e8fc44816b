// Package settings assembles everything a bundle backend needs to know.
//
// New resolves a project's metadata through its build system, finds the
// workspace package that carries a "bundle" metadata section, decodes that
// section into BundleSettings, works out where the build output lives and
// which binary is bundled, and (unless told not to) runs the build. The
// resulting *Settings is read-only; backends query it through accessors such
// as BundleName, PackageTypes, IconFiles and ResourceFiles.
//
// Optional metadata is never an error: scalar accessors for optional fields
// return (value, ok) and list accessors return nil when nothing was
// declared.
package settings
