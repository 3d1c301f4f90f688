package omnipak

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/omnipak/pkg/loadorder"
	"github.com/arthur-debert/omnipak/pkg/logging"
	"github.com/arthur-debert/omnipak/pkg/merge"
	"github.com/arthur-debert/omnipak/pkg/report"
	"github.com/arthur-debert/omnipak/pkg/ui"
	"github.com/arthur-debert/omnipak/pkg/ui/progress"
	"github.com/arthur-debert/omnipak/pkg/ui/styles"
)

type mergeFlags struct {
	dryRun    bool
	noWait    bool
	noReports bool
}

func newMergeCmd(flags *globalFlags) *cobra.Command {
	mf := &mergeFlags{}
	cmd := &cobra.Command{
		Use:     "merge",
		Short:   MsgMergeShort,
		Long:    MsgMergeLong,
		Example: MsgMergeExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(flags)
			if err != nil {
				return err
			}
			return runMerge(cmd, a, mf)
		},
	}
	cmd.Flags().BoolVarP(&mf.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&mf.noWait, "no-wait", false, MsgFlagNoWait)
	cmd.Flags().BoolVar(&mf.noReports, "no-reports", false, MsgFlagNoReports)
	return cmd
}

func runMerge(cmd *cobra.Command, a *app, mf *mergeFlags) error {
	logger := logging.GetLogger("cmd.merge")
	start := time.Now()

	overrides, err := a.overrides()
	if err != nil {
		return err
	}
	opts := merge.Options{
		DataDir:     a.layout.Data,
		ModsDir:     a.layout.Mods,
		OrderPath:   a.layout.LoadOrder,
		OutputPath:  a.layout.Output,
		Area:        a.cfg.AreaOptions(),
		Overrides:   overrides,
		ValidateXML: a.cfg.Merge.ValidateXML,
		DryRun:      mf.dryRun,
	}
	if a.cfg.Merge.Reports && !mf.noReports {
		opts.Reports = report.NewWriter(a.fs, a.layout.Reports)
	}
	logger.Info().
		Str("data", opts.DataDir).
		Str("mods", opts.ModsDir).
		Str("output", opts.OutputPath).
		Bool("dryRun", opts.DryRun).
		Msg("Starting merge")

	orchestrator := merge.New(a.store, a.fs, opts)

	// The spinner runs until the merge returns and is joined before any
	// result is printed.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	spinner := progress.Spinner{
		Text:    "Merging mods",
		Out:     cmd.ErrOrStderr(),
		Enabled: ui.IsTerminal(os.Stderr),
	}
	g.Go(func() error { return spinner.Run(gctx) })
	var res *merge.Result
	g.Go(func() error {
		defer cancel()
		var runErr error
		res, runErr = orchestrator.Run(gctx)
		return runErr
	})
	if err := g.Wait(); err != nil {
		return err
	}

	printMergeResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, opts)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgElapsed, time.Since(start).Round(time.Millisecond))

	if !mf.noWait && ui.IsTerminal(os.Stdin) {
		ui.WaitForEnter(cmd.InOrStdin(), cmd.OutOrStdout(), MsgPressEnter)
	}
	return nil
}

func printMergeResult(out, errOut io.Writer, res *merge.Result, opts merge.Options) {
	warn := func(format string, arg string) {
		_, _ = fmt.Fprintln(errOut, styles.Render(styles.Warning, "warning: "+fmt.Sprintf(format, arg)))
	}

	printLoadOrderNotes(out, errOut, res.LoadOrder, opts.OrderPath)
	for _, m := range res.FailedMods {
		warn(MsgFailedMod, m)
	}
	for _, p := range res.InvalidXML {
		warn(MsgInvalidXML, p)
	}

	if len(res.LoadOrder.Order) == 0 {
		_, _ = fmt.Fprintf(out, MsgNoMods, opts.ModsDir)
	}
	_, _ = fmt.Fprintf(out, MsgMergeStats,
		len(res.LoadOrder.Order), res.Output.Len(), res.Merged, res.Introduced, res.Replaced)

	if opts.DryRun {
		_, _ = fmt.Fprintln(out, styles.Render(styles.Success, MsgDryRunSuccess))
		return
	}
	_, _ = fmt.Fprintln(out, styles.Render(styles.Success, fmt.Sprintf(MsgMergeSuccess, opts.OutputPath)))
}

func printLoadOrderNotes(out, errOut io.Writer, lo *loadorder.Result, orderPath string) {
	if lo == nil {
		return
	}
	if lo.Created {
		_, _ = fmt.Fprintf(out, MsgLoadOrderCreated, orderPath)
	}
	warn := func(format string, arg string) {
		_, _ = fmt.Fprintln(errOut, styles.Render(styles.Warning, "warning: "+fmt.Sprintf(format, arg)))
	}
	for _, m := range lo.Missing {
		warn(MsgMissingMod, m)
	}
	for _, m := range lo.Unlisted {
		warn(MsgUnlistedMod, m)
	}
	for _, m := range lo.Duplicates {
		warn(MsgDuplicateMod, m)
	}
}
