// Package cliutil holds the helpers every dotgen subcommand shares: global
// flag lookup, environment setup and result rendering.
package cliutil

import (
	"github.com/arthur-debert/dotgen/pkg/commands"
	"github.com/arthur-debert/dotgen/pkg/ui"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
	"github.com/spf13/cobra"
)

// Global flag names
const (
	FlagVerbose    = "verbose"
	FlagYes        = "yes"
	FlagInstallDir = "install-dir"
	FlagConfig     = "config"
	FlagFormat     = "format"
)

// Env resolves the command environment from the global flags.
func Env(cmd *cobra.Command) (*commands.Env, error) {
	flags := cmd.Root().PersistentFlags()
	yes, _ := flags.GetBool(FlagYes)
	installDir, _ := flags.GetString(FlagInstallDir)
	configFile, _ := flags.GetString(FlagConfig)

	return commands.Setup(commands.Options{
		ConfigFile: configFile,
		InstallDir: installDir,
		AssumeYes:  yes,
	})
}

// Renderer returns the renderer for the command's --format flag, or auto
// detection when the command has none.
func Renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format := ui.FormatAuto
	if f := cmd.Flags().Lookup(FlagFormat); f != nil {
		parsed, err := ui.ParseFormat(f.Value.String())
		if err != nil {
			return nil, err
		}
		format = parsed
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// Output renders result when there is one and passes err through, so a
// partial failure still shows what was done.
func Output(cmd *cobra.Command, result *display.CommandResult, err error) error {
	if result == nil {
		return err
	}
	r, rerr := Renderer(cmd)
	if rerr != nil {
		return rerr
	}
	if rerr := r.RenderResult(result); rerr != nil {
		return rerr
	}
	return err
}

// AddFormatFlag adds --format to a listing command.
func AddFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String(FlagFormat, "auto", "Output format (auto, text, json, yaml)")
}
