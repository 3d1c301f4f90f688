// Package progress shows an animated spinner while a long step runs. The
// spinner is purely cosmetic; it runs until its context is cancelled and
// shares no state with the work it decorates.
package progress

import (
	"context"
	"io"

	"github.com/pterm/pterm"
)

// Spinner describes the spinner to show.
type Spinner struct {
	Text string
	Out  io.Writer
	// Enabled is false when the output is not a terminal; Run then only
	// waits for cancellation.
	Enabled bool
}

// Run shows the spinner until ctx is done. It is meant to run as its own
// task next to the work and always returns nil so it never fails the group.
func (s Spinner) Run(ctx context.Context) error {
	if !s.Enabled {
		<-ctx.Done()
		return nil
	}

	printer := pterm.DefaultSpinner.WithRemoveWhenDone(true)
	if s.Out != nil {
		printer = printer.WithWriter(s.Out)
	}
	sp, err := printer.Start(s.Text)
	if err != nil {
		<-ctx.Done()
		return nil
	}
	<-ctx.Done()
	_ = sp.Stop()
	return nil
}
