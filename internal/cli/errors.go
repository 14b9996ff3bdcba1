package cli

import (
	"errors"

	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/tui"
)

// ReportError prints a command failure with a hint for the failures a user
// can recover from with git itself
func ReportError(splog *tui.Splog, err error) {
	if splog == nil {
		splog = tui.NewSplog()
	}
	splog.Error("%v", err)

	var stepErr *carveerrors.StepError
	switch {
	case errors.Is(err, carveerrors.ErrRebaseConflict):
		splog.Tip("Resolve the conflicts and run 'git rebase --continue', or 'git rebase --abort' to give up.")
	case errors.Is(err, carveerrors.ErrDirtyWorktree):
		splog.Tip("Commit or stash your changes and try again.")
	case errors.Is(err, carveerrors.ErrNotOnBranch):
		splog.Tip("Check out a branch first.")
	case errors.As(err, &stepErr) && !errors.Is(err, carveerrors.ErrStateConflict):
		splog.Tip("The %s stopped at %q. Run 'git status' to see where git left the repository.", stepErr.Recipe, stepErr.Step)
	}
}
