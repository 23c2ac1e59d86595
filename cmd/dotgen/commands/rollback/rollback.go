package rollback

import (
	"strconv"

	"github.com/arthur-debert/dotgen/cmd/dotgen/internal/cliutil"
	"github.com/arthur-debert/dotgen/pkg/commands"
	"github.com/arthur-debert/dotgen/pkg/errors"
	"github.com/spf13/cobra"
)

// NewCommand creates the rollback command and its subcommands
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rollback",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}
			result, err := commands.RollbackInteractive(cmd.Context(), env)
			return cliutil.Output(cmd, result, err)
		},
	}

	cmd.AddCommand(newListCmd(), newToCmd(), newDeleteCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}
			result, err := commands.RollbackList(env, commands.RollbackListOptions{All: all})
			return cliutil.Output(cmd, result, err)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	cliutil.AddFormatFlag(cmd)
	return cmd
}

func newToCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to <id>",
		Short: MsgToShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}
			result, err := commands.RollbackTo(cmd.Context(), env, id)
			return cliutil.Output(cmd, result, err)
		},
	}
}

func newDeleteCmd() *cobra.Command {
	var keepBackup bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: MsgDeleteShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}
			result, err := commands.RollbackDelete(cmd.Context(), env, commands.RollbackDeleteOptions{
				ID:         id,
				KeepBackup: keepBackup,
			})
			return cliutil.Output(cmd, result, err)
		},
	}

	cmd.Flags().BoolVar(&keepBackup, "keep-backup", false, MsgFlagKeepBackup)
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.Newf(errors.ErrInvalidInput, MsgErrBadID, s)
	}
	return id, nil
}
