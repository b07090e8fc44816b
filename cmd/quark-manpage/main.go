package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/quark/cmd/quark"
)

// Writes the top-level man page to stdout, for packaging
func main() {
	if err := doc.GenMan(quark.NewRootCmd(), quark.ManHeader(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
