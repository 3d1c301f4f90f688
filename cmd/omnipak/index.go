package omnipak

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/omnipak/pkg/ui/styles"
)

func newIndexCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "index",
		Short:   MsgIndexShort,
		GroupID: "core",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "lookup <path>...",
		Short: MsgIndexLookupShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			idx, err := a.buildIndex()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, skipped := range idx.Skipped() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(),
					styles.Render(styles.Warning, "warning: "+fmt.Sprintf(MsgSkippedSource, skipped)))
			}
			_, _ = fmt.Fprintf(out, MsgLookupPrefixes, idx.Prefixes())
			for _, p := range args {
				archives, tier, ok := idx.Lookup(p)
				if !ok {
					_, _ = fmt.Fprintf(out, MsgLookupNone, p)
					continue
				}
				_, _ = fmt.Fprintf(out, MsgLookupTier, styles.Render(styles.Path, p), tier)
				for _, archive := range archives {
					_, _ = fmt.Fprintf(out, "  %s\n", archive)
				}
			}
			return nil
		},
	})

	return cmd
}
