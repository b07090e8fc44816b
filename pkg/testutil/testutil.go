package testutil

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	// Create parent directories if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// CreateSymlink creates a symbolic link pointing to target.
// It fails the test if the symlink cannot be created.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("Failed to create parent directory for symlink %s: %v", link, err)
	}

	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

// CreatePNG writes a solid-colour PNG of the given size, creating parent
// directories as needed.
func CreatePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
	return path
}

// FileExists checks if a file exists and is not a directory.
func FileExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}

// SymlinkExists checks if a path is a symbolic link.
func SymlinkExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}

// ReadFile reads the content of a file and returns it as a string.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	return string(content)
}

// ReadSymlink reads the target of a symbolic link.
// It fails the test if the link cannot be read.
func ReadSymlink(t *testing.T, path string) string {
	t.Helper()

	target, err := os.Readlink(path)
	if err != nil {
		t.Fatalf("Failed to read symlink %s: %v", path, err)
	}

	return target
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	if !FileExists(t, path) {
		t.Fatalf("File %s does not exist", path)
	}

	actual := ReadFile(t, path)
	if actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertSymlink checks that a symlink exists and points to the expected target.
func AssertSymlink(t *testing.T, link, expectedTarget string) {
	t.Helper()

	if !SymlinkExists(t, link) {
		t.Fatalf("Symlink %s does not exist", link)
	}

	actualTarget := ReadSymlink(t, link)
	if actualTarget != expectedTarget {
		t.Errorf("Symlink %s target mismatch\nExpected: %s\nActual: %s", link, expectedTarget, actualTarget)
	}
}

// AssertNoFile checks that a file does not exist.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("File %s exists but should not", path)
	}
}

// Chmod changes the permissions of a file or directory.
// It fails the test if the operation fails.
func Chmod(t *testing.T, path string, mode os.FileMode) {
	t.Helper()

	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("Failed to chmod %s: %v", path, err)
	}
}

// RequireNonRoot skips the test when running as root, where permission
// checks do not apply.
func RequireNonRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("Test requires a non-root user")
	}
}

// SkipOnWindows skips the test if running on Windows.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if os.PathSeparator == '\\' {
		t.Skip("Test not supported on Windows")
	}
}

// Chdir changes the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(original); err != nil {
			t.Fatalf("Failed to restore working directory %s: %v", original, err)
		}
	})
}

// MD5Hex returns the hex md5 digest of content, as written to DEBIAN/md5sums
func MD5Hex(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}
