// Package output prints quark's user-facing progress lines, in the style
// cargo uses:
//
//	    Bundling Hello.app
//	    Finished 1 bundle at:
//	        target/release/bundle/osx/Hello.app
//	warning: No package in workspace has [package.metadata.bundle] section
//	error: [BUILD_FAILED] failed to build project in the release profile
//
// Colors are used only when the writer is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/quark/pkg/logging"
)

// Renderer writes progress, warnings and errors
type Renderer struct {
	writer  io.Writer
	styles  map[string]lipgloss.Style
	noColor bool
}

// NewRenderer creates a Renderer writing to w. Color is disabled when
// noColor is set, NO_COLOR is set, or w is not a terminal.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	log := logging.GetLogger("output.Renderer")

	noColor = noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(w)

	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	log.Debug().
		Bool("noColor", noColor).
		Str("colorProfile", fmt.Sprintf("%v", r.ColorProfile())).
		Msg("Creating renderer")

	styles, err := ParseStyles(r, stylesYAML)
	if err != nil {
		// the embedded styles are fixed at build time
		panic(err)
	}
	return &Renderer{writer: w, styles: styles, noColor: noColor}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NoColor reports whether output is plain text
func (r *Renderer) NoColor() bool { return r.noColor }

// Style returns the named style, or a plain one
func (r *Renderer) Style(name string) lipgloss.Style {
	if style, ok := r.styles[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Progress prints a right-aligned step followed by a message
func (r *Renderer) Progress(step, msg string) error {
	_, err := fmt.Fprintf(r.writer, "%s %s\n", r.Style("Step").Render(fmt.Sprintf("%12s", step)), msg)
	return err
}

// Bundling announces a bundle being written
func (r *Renderer) Bundling(name string) error {
	return r.Progress("Bundling", name)
}

// Finished reports the produced bundles, one path per line
func (r *Renderer) Finished(paths []string) error {
	noun := "bundles"
	if len(paths) == 1 {
		noun = "bundle"
	}
	if err := r.Progress("Finished", fmt.Sprintf("%d %s at:", len(paths), noun)); err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintf(r.writer, "        %s\n", r.Style("Path").Render(path)); err != nil {
			return err
		}
	}
	return nil
}

// Warning prints a warning line
func (r *Renderer) Warning(msg string) error {
	_, err := fmt.Fprintf(r.writer, "%s %s\n", r.Style("Warning").Render("warning:"), msg)
	return err
}

// Error prints an error line
func (r *Renderer) Error(err error) error {
	_, werr := fmt.Fprintf(r.writer, "%s %s\n", r.Style("Error").Render("error:"), err)
	return werr
}
