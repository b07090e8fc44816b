// Package resources resolves declared icon and resource patterns into the
// concrete files a bundle backend copies.
//
// A ResourcePaths is a pull-based cursor over three nested levels: the
// ordered pattern list, the sorted glob matches of the current pattern
// (doublestar syntax, so "**" and "{a,b}" work), and, when walking is
// allowed, the files below a matched directory. Problems with one pattern or
// entry are returned as error items and do not stop the rest of the
// sequence. A ResourcePaths cannot be restarted; build a new one to resolve
// again.
package resources
