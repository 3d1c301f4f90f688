package omnipak

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/omnipak/pkg/loadorder"
	"github.com/arthur-debert/omnipak/pkg/ui/styles"
)

func newOrderCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Short:   MsgOrderShort,
		GroupID: "core",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgOrderListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			res, err := loadorder.Resolve(a.fs, a.layout.Mods, a.layout.LoadOrder)
			if err != nil {
				return err
			}
			printLoadOrderNotes(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, a.layout.LoadOrder)
			printOrder(cmd.OutOrStdout(), res)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: MsgOrderResetShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			res, err := loadorder.Reset(a.fs, a.layout.Mods, a.layout.LoadOrder)
			if err != nil {
				return err
			}
			printLoadOrderNotes(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, a.layout.LoadOrder)
			printOrder(cmd.OutOrStdout(), res)
			return nil
		},
	})

	return cmd
}

func printOrder(out io.Writer, res *loadorder.Result) {
	_, _ = fmt.Fprintln(out, styles.Render(styles.Header, "Load order (last wins):"))
	for i, m := range res.Order {
		_, _ = fmt.Fprintf(out, "%3d  %s\n", i+1, m)
	}
}
