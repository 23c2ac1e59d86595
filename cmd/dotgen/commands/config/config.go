package config

import (
	"github.com/arthur-debert/dotgen/cmd/dotgen/internal/cliutil"
	"github.com/arthur-debert/dotgen/pkg/commands"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
	"github.com/spf13/cobra"
)

// NewCommand creates the config command and its subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: "core",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}
			result, err := commands.ConfigList(env)
			return cliutil.Output(cmd, result, err)
		},
	}
	cliutil.AddFormatFlag(list)

	cmd.AddCommand(
		list,
		newToggleCmd("enable", MsgEnableShort, commands.ConfigEnable),
		newToggleCmd("disable", MsgDisableShort, commands.ConfigDisable),
	)
	return cmd
}

func newToggleCmd(verb, short string, run func(*commands.Env, string) (*display.CommandResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:               verb + " <name>",
		Short:             short,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: itemNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}
			result, err := run(env, args[0])
			return cliutil.Output(cmd, result, err)
		},
	}
}

// itemNamesCompletion offers the configured item names
func itemNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	env, err := cliutil.Env(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := append([]string{}, env.Config.Items.Minimal...)
	names = append(names, env.Config.Items.Extra...)
	return names, cobra.ShellCompDirectiveNoFileComp
}
