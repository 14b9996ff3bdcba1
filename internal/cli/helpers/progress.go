package helpers

import (
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/internal/runtime"
	"carve.dev/carve/internal/tui"
)

// WithProgress runs fn against the context's rewriter. In a terminal the
// steps are shown in a live view and console logging is paused until fn
// returns; elsewhere steps go through the logger.
func WithProgress(ctx *runtime.Context, title string, fn func(rw *rewrite.Rewriter) error) error {
	if !tui.InteractiveAllowed() {
		return fn(ctx.Rewriter())
	}

	reporter := tui.NewChannelProgressReporter()
	errCh := make(chan error, 1)

	ctx.Splog.SetQuiet(true)
	go func() {
		defer reporter.Close()
		errCh <- fn(ctx.Rewriter(rewrite.WithReporter(reporter)))
	}()

	viewErr := tui.RunStepTUI(title, reporter.Updates())
	// The view may quit before the rewrite ends; keep the channel moving.
	go func() {
		for range reporter.Updates() {
		}
	}()

	err := <-errCh
	ctx.Splog.SetQuiet(false)
	if viewErr != nil {
		ctx.Splog.Debug("Step view failed: %v", viewErr)
	}
	return err
}
