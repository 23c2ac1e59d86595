// Command dotgen-completions writes shell completion scripts for dotgen.
// With a shell argument the script goes to stdout; with -dir every
// supported shell is written into that directory.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotgen/cmd/dotgen"
)

var generators = map[string]struct {
	file string
	gen  func(*cobra.Command, io.Writer) error
}{
	"bash":       {"dotgen.bash", func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) }},
	"zsh":        {"_dotgen", func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) }},
	"fish":       {"dotgen.fish", func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) }},
	"powershell": {"dotgen.ps1", func(c *cobra.Command, w io.Writer) error { return c.GenPowerShellCompletionWithDesc(w) }},
}

func main() {
	dir := flag.String("dir", "", "write completions for every shell into this directory")
	flag.Parse()

	root := dotgen.NewRootCmd()

	if *dir != "" {
		if err := writeAll(root, *dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell> | -dir <path>\n", os.Args[0])
		os.Exit(1)
	}

	shell := flag.Arg(0)
	g, ok := generators[shell]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\n", shell)
		os.Exit(1)
	}
	if err := g.gen(root, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", shell, err)
		os.Exit(1)
	}
}

func writeAll(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for shell, g := range generators {
		f, err := os.Create(filepath.Join(dir, g.file))
		if err != nil {
			return err
		}
		err = g.gen(root, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", shell, err)
		}
	}
	return nil
}
