// Command dotgen-manpage renders the dotgen man pages. Without arguments the
// root page is written to stdout; given a directory, one page per command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotgen/cmd/dotgen"
	"github.com/arthur-debert/dotgen/internal/version"
)

func main() {
	root := dotgen.NewRootCmd()
	root.DisableAutoGenTag = true

	header := &doc.GenManHeader{
		Title:   "DOTGEN",
		Section: "1",
		Source:  "dotgen " + version.Version,
		Manual:  "dotgen manual",
	}

	var err error
	if len(os.Args) > 1 {
		dir := os.Args[1]
		if err = os.MkdirAll(dir, 0755); err == nil {
			err = doc.GenManTree(root, header, dir)
		}
	} else {
		err = doc.GenMan(root, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
