package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/arthur-debert/quark/cmd/quark"
	"github.com/arthur-debert/quark/internal/version"
	"github.com/arthur-debert/quark/pkg/output"
)

func main() {
	rootCmd := quark.NewRootCmd()

	// fang replaces rootCmd.Version, so the version is passed explicitly.
	// quark ships its own completion and man commands.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.String()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			_ = output.NewRenderer(w, false).Error(err)
		}),
	); err != nil {
		os.Exit(1)
	}
}
