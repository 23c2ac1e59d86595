package update

import (
	"github.com/arthur-debert/dotgen/cmd/dotgen/internal/cliutil"
	"github.com/arthur-debert/dotgen/pkg/commands"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewCommand creates the update command
func NewCommand() *cobra.Command {
	var (
		force       bool
		forceTag    bool
		forceRecord bool
	)

	cmd := &cobra.Command{
		Use:       "update [stable|edge]",
		Short:     MsgShort,
		Long:      MsgLong,
		Example:   MsgExample,
		GroupID:   "core",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"stable", "edge"},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cliutil.Env(cmd)
			if err != nil {
				return err
			}

			opts := commands.UpdateOptions{
				ForceTag:    force || forceTag,
				ForceRecord: force || forceRecord,
			}
			if len(args) == 1 {
				opts.Mode = args[0]
			}

			log.Info().
				Str("install_dir", env.Paths.InstallDir()).
				Str("mode", opts.Mode).
				Msg("Running update")

			result, err := commands.Update(cmd.Context(), env, opts)
			return cliutil.Output(cmd, result, err)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().BoolVar(&forceTag, "force-tag", false, MsgFlagForceTag)
	cmd.Flags().BoolVar(&forceRecord, "force-record", false, MsgFlagForceRecord)

	return cmd
}
