package resources

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/quark/pkg/errors"
	"github.com/arthur-debert/quark/pkg/filesystem"
	"github.com/arthur-debert/quark/pkg/logging"
)

// Item is one element of the sequence. Path is the resource as declared
// (relative patterns give relative paths), Source is where it is read
// from. Err is set for items that could not be resolved.
type Item struct {
	Path   string
	Source string
	Err    error
}

type walkEntry struct {
	path   string
	source string
}

// ResourcePaths is a lazy, single-use sequence of resolved resource files
type ResourcePaths struct {
	fsys      filesystem.FS
	baseDir   string
	allowWalk bool
	logger    zerolog.Logger

	patterns   []string
	patternIdx int

	matches  []string
	matchIdx int

	// pending walk entries, top of stack last
	walk []walkEntry
}

// Option configures a ResourcePaths
type Option func(*ResourcePaths)

// WithBaseDir resolves relative patterns against dir instead of the working
// directory. Yielded paths stay relative.
func WithBaseDir(dir string) Option {
	return func(r *ResourcePaths) {
		r.baseDir = dir
	}
}

// WithFS sets the filesystem used to inspect matches and walk directories
func WithFS(fsys filesystem.FS) Option {
	return func(r *ResourcePaths) {
		r.fsys = fsys
	}
}

// New creates a ResourcePaths over patterns. When allowWalk is false a
// pattern matching a directory yields an error item; when true the
// directory's files are yielded instead.
func New(patterns []string, allowWalk bool, opts ...Option) *ResourcePaths {
	r := &ResourcePaths{
		fsys:      filesystem.NewOS(),
		allowWalk: allowWalk,
		patterns:  append([]string(nil), patterns...),
		logger:    logging.GetLogger("resources"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Next returns the next item, or false once the sequence is exhausted
func (r *ResourcePaths) Next() (Item, bool) {
	for {
		if len(r.walk) > 0 {
			if item, ok := r.stepWalk(); ok {
				return item, true
			}
			continue
		}

		if r.matchIdx < len(r.matches) {
			match := r.matches[r.matchIdx]
			r.matchIdx++
			if item, ok := r.stepMatch(match); ok {
				return item, true
			}
			continue
		}

		if r.patternIdx < len(r.patterns) {
			pattern := r.patterns[r.patternIdx]
			r.patternIdx++
			if item, ok := r.expand(pattern); ok {
				return item, true
			}
			continue
		}

		return Item{}, false
	}
}

// All adapts the cursor to a range-over-func iterator
func (r *ResourcePaths) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for {
			item, ok := r.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Collect drains the sequence, returning the resolved items and the errors
// in encounter order.
func (r *ResourcePaths) Collect() ([]Item, []error) {
	var items []Item
	var errs []error
	for item := range r.All() {
		if item.Err != nil {
			errs = append(errs, item.Err)
			continue
		}
		items = append(items, item)
	}
	return items, errs
}

// expand globs one pattern, replacing the current match list. The literal
// directory prefix of the pattern is split off and the remainder is matched
// against the configured filesystem rooted there, so the base directory is
// never read as glob syntax. A bad pattern or an unreadable directory is
// returned as an error item.
func (r *ResourcePaths) expand(pattern string) (Item, bool) {
	r.matches = r.matches[:0]
	r.matchIdx = 0

	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if rest == "" {
		rest = "."
	}
	if !doublestar.ValidatePattern(rest) {
		return Item{
			Path: pattern,
			Err: errors.Newf(errors.ErrGlobPattern, "invalid glob pattern %q", pattern).
				WithDetail("pattern", pattern),
		}, true
	}

	prefix := filepath.FromSlash(base)
	root := r.source(prefix)
	info, err := r.fsys.Stat(root)
	switch {
	case os.IsNotExist(err), err == nil && !info.IsDir():
		r.logger.Debug().Str("pattern", pattern).Msg("resource pattern base does not exist")
		return Item{}, false
	case err != nil:
		return Item{Path: pattern, Source: root, Err: accessError(err, root)}, true
	}

	found, err := doublestar.Glob(r.fsys.DirFS(root), rest, doublestar.WithFailOnIOErrors())
	if err != nil {
		return Item{Path: pattern, Source: root, Err: accessError(err, root)}, true
	}
	sort.Strings(found)

	for _, match := range found {
		r.matches = append(r.matches, filepath.Join(prefix, filepath.FromSlash(match)))
	}

	r.logger.Debug().
		Str("pattern", pattern).
		Int("matches", len(r.matches)).
		Msg("expanded resource pattern")
	return Item{}, false
}

// stepMatch handles one glob match: files are yielded, directories are
// rejected or queued for walking.
func (r *ResourcePaths) stepMatch(match string) (Item, bool) {
	source := r.source(match)
	info, err := r.fsys.Stat(source)
	if err != nil {
		return Item{Path: match, Source: source, Err: accessError(err, source)}, true
	}
	if !info.IsDir() {
		return Item{Path: match, Source: source}, true
	}
	if !r.allowWalk {
		return Item{
			Path:   match,
			Source: source,
			Err: errors.Newf(errors.ErrResourceIsDir, "%s is a directory", match).
				WithDetail("path", match),
		}, true
	}
	return r.pushChildren(walkEntry{path: match, source: source})
}

// stepWalk pops one walk entry. Directories are descended without being
// yielded; symlinks to directories are skipped.
func (r *ResourcePaths) stepWalk() (Item, bool) {
	entry := r.walk[len(r.walk)-1]
	r.walk = r.walk[:len(r.walk)-1]

	info, err := r.fsys.Lstat(entry.source)
	if err != nil {
		return Item{Path: entry.path, Source: entry.source, Err: accessError(err, entry.source)}, true
	}

	switch {
	case info.IsDir():
		return r.pushChildren(entry)
	case info.Mode()&fs.ModeSymlink != 0:
		if target, err := r.fsys.Stat(entry.source); err == nil && target.IsDir() {
			r.logger.Trace().Str("path", entry.path).Msg("skipping symlinked directory")
			return Item{}, false
		}
	}
	return Item{Path: entry.path, Source: entry.source}, true
}

// pushChildren reads a directory and queues its entries so they pop in
// lexical order.
func (r *ResourcePaths) pushChildren(dir walkEntry) (Item, bool) {
	entries, err := r.fsys.ReadDir(dir.source)
	if err != nil {
		return Item{Path: dir.path, Source: dir.source, Err: accessError(err, dir.source)}, true
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for i := len(entries) - 1; i >= 0; i-- {
		name := entries[i].Name()
		r.walk = append(r.walk, walkEntry{
			path:   filepath.Join(dir.path, name),
			source: filepath.Join(dir.source, name),
		})
	}
	return Item{}, false
}

func (r *ResourcePaths) source(path string) string {
	if r.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

func accessError(err error, path string) error {
	code := errors.ErrFileAccess
	if os.IsNotExist(err) {
		code = errors.ErrFileNotFound
	}
	return errors.Wrapf(err, code, "cannot read %s", path).WithDetail("path", path)
}
