package buildsys

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/quark/pkg/errors"
)

// Tool names accepted by Detect
const (
	ToolAuto     = "auto"
	ToolCargo    = "cargo"
	ToolGo       = "go"
	ToolPrebuilt = "prebuilt"
)

// Detect returns the build system for the project in dir. With tool "auto"
// (or empty) it picks Cargo when Cargo.toml exists, Go when go.mod exists
// and Prebuilt otherwise.
func Detect(dir, tool string, runner Runner) (BuildSystem, error) {
	if runner == nil {
		runner = NewExecRunner()
	}
	switch tool {
	case ToolCargo:
		return NewCargo(dir, runner), nil
	case ToolGo:
		return NewGo(dir, runner), nil
	case ToolPrebuilt:
		return NewPrebuilt(dir), nil
	case ToolAuto, "":
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown build tool %q", tool).
			WithDetail("valid", []string{ToolAuto, ToolCargo, ToolGo, ToolPrebuilt})
	}

	switch {
	case exists(filepath.Join(dir, "Cargo.toml")):
		return NewCargo(dir, runner), nil
	case exists(filepath.Join(dir, "go.mod")):
		return NewGo(dir, runner), nil
	default:
		return NewPrebuilt(dir), nil
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
