// Package backends holds what the staging backends share: placing the
// binary and the declared resources inside a bundle directory.
//
// The backends themselves live in subpackages, one per package type:
//
//	osx  <out>/bundle/osx/<Name>.app
//	deb  <out>/bundle/deb/<bin>_<version>_<arch>/
//	msi  <out>/bundle/msi/<bin>.wxs plus staged files
//
// None of them invoke a native packager; they lay out the inputs one
// consumes.
package backends
