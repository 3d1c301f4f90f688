package omnipak

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/omnipak/internal/version"
	"github.com/arthur-debert/omnipak/pkg/logging"
	"github.com/arthur-debert/omnipak/pkg/ui"
	"github.com/arthur-debert/omnipak/pkg/ui/styles"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "omnipak",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Until the config names a log dir, log to the XDG state dir
			logging.SetupLogger(flags.verbosity, "")
			format, err := ui.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			styles.SetPlain(format.Resolve(os.Stdout) != ui.FormatTerminal)
			log.Debug().Str("command", cmd.Name()).Str("format", format.String()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newMergeCmd(flags))
	rootCmd.AddCommand(newOrderCmd(flags))
	rootCmd.AddCommand(newIndexCmd(flags))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}
