package filesystem

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetina(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"icon@2x.png", true},
		{"icons/32x32@2x.png", true},
		{"/abs/path/icon@2x.icns", true},
		{"icon@2x", true},
		{"icon.png", false},
		{"icon@2x.png.bak", false},
		{"icon@2.png", false},
		{"@2x", true},
		{"", false},
		{"dir@2x/icon.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetina(tt.path))
		})
	}
}

func TestResourceRelPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain relative", "assets/logo.png", "assets/logo.png"},
		{"absolute", "/usr/share/logo.png", "_root_/usr/share/logo.png"},
		{"leading dot", "./assets/logo.png", "assets/logo.png"},
		{"parent", "../shared/logo.png", "_up_/shared/logo.png"},
		{"mixed", "../a/./b/../c", "_up_/a/b/_up_/c"},
		{"absolute with parent", "/../etc/passwd", "_root_/_up_/etc/passwd"},
		{"doubled separators", "a//b///c", "a/b/c"},
		{"trailing slash", "assets/", "assets"},
		{"only dot", ".", ""},
		{"empty", "", ""},
		{"only parents", "../..", "_up_/_up_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.expected), ResourceRelPath(filepath.FromSlash(tt.input)))
		})
	}
}

// Every combination of up to five components drawn from root markers, ".",
// "..", empty and ordinary names must produce a relative path with no ".."
// component.
func TestResourceRelPath_NeverEscapes(t *testing.T) {
	alphabet := []string{"", ".", "..", "a", "b.png", "..."}

	var inputs []string
	var build func(prefix []string, depth int)
	build = func(prefix []string, depth int) {
		joined := strings.Join(prefix, "/")
		inputs = append(inputs, joined, "/"+joined)
		if depth == 0 {
			return
		}
		for _, part := range alphabet {
			build(append(append([]string(nil), prefix...), part), depth-1)
		}
	}
	build(nil, 5)

	for _, input := range inputs {
		got := ResourceRelPath(filepath.FromSlash(input))

		assert.False(t, filepath.IsAbs(got), "input %q produced absolute %q", input, got)
		for _, part := range strings.Split(filepath.ToSlash(got), "/") {
			assert.NotEqual(t, "..", part, "input %q produced %q", input, got)
			assert.NotEqual(t, ".", part, "input %q produced %q", input, got)
		}

		// Joining under a root must stay under that root
		root := filepath.FromSlash("/bundle/Resources")
		joined := filepath.Join(root, got)
		assert.True(t, joined == root || strings.HasPrefix(joined, root+string(filepath.Separator)),
			"input %q escaped to %q", input, joined)

		// The ".." count is preserved as "_up_" segments
		ups := 0
		for _, part := range strings.Split(input, "/") {
			if part == ".." {
				ups++
			}
		}
		assert.Equal(t, ups, strings.Count(filepath.ToSlash(got), UpSegment), "input %q", input)
	}
}
