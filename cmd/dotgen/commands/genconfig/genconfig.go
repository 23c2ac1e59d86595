package genconfig

import (
	"fmt"

	"github.com/arthur-debert/dotgen/cmd/dotgen/internal/cliutil"
	"github.com/arthur-debert/dotgen/pkg/commands"
	"github.com/spf13/cobra"
)

// NewCommand creates the genconfig command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "genconfig",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}
			content, err := commands.GenConfig(env)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
}
