package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"carve.dev/carve/internal/config"
	carveerrors "carve.dev/carve/internal/errors"
	"carve.dev/carve/internal/git"
	"carve.dev/carve/internal/patch"
	"carve.dev/carve/internal/tui"
)

const recipeSplit = "split"

// splitRun is the state one Split-Commit run threads through its steps
type splitRun struct {
	ref    string
	points []SplitPoint

	hash        string
	parent      string
	subject     string
	branch      string
	descendants []string

	plan    *SplitPlan
	pieces  []string
	dir     string
	commits []string
}

// SplitCommit replaces the commit at ref with one commit per piece of its
// diff, cut at points, and replays the commits after it on the current
// branch. It returns the hashes of the new piece commits in order.
//
// Pieces that end up with no change are skipped, so fewer commits than
// pieces may be returned.
func (r *Rewriter) SplitCommit(ctx context.Context, ref string, points []SplitPoint) ([]string, error) {
	s := &splitRun{ref: ref, points: points}
	if err := r.run(ctx, r.planningRecipe(s)); err != nil {
		return nil, err
	}

	defer r.cleanupPatchDir(s)

	steps := []Step{
		{Name: "check working tree", Run: r.requireClean},
		{Name: "prepare patch directory", Run: func(context.Context) error {
			dir, err := os.MkdirTemp("", "carve-split-*")
			if err != nil {
				return fmt.Errorf("failed to create patch directory: %w", err)
			}
			s.dir = dir
			return r.writePieces(s)
		}},
		{Name: "check pieces", Run: func(ctx context.Context) error {
			return r.checkPieces(ctx, s)
		}},
		{Name: "reset to parent", Run: func(ctx context.Context) error {
			return r.runner.HardReset(ctx, s.parent)
		}},
	}
	for i := range s.pieces {
		i := i
		steps = append(steps, Step{
			Name: fmt.Sprintf("commit piece %d/%d", i+1, len(s.pieces)),
			Run: func(ctx context.Context) error {
				return r.commitPiece(ctx, s, i)
			},
		})
	}
	steps = append(steps, Step{Name: "replay descendants", Run: func(ctx context.Context) error {
		return r.replay(ctx, s.descendants)
	}})

	if err := r.run(ctx, Recipe{Name: recipeSplit, Steps: steps}); err != nil {
		return nil, err
	}

	r.splog.Info("Split %s into %d commits on %s.", tui.ColorHash(s.hash), len(s.commits), tui.ColorBranch(s.branch))
	return s.commits, nil
}

// PreviewSplit computes the piece patches SplitCommit would commit without
// touching the repository. Pieces with no change are returned as empty strings.
func (r *Rewriter) PreviewSplit(ctx context.Context, ref string, points []SplitPoint) ([]string, error) {
	s := &splitRun{ref: ref, points: points}
	if err := r.run(ctx, r.planningRecipe(s)); err != nil {
		return nil, err
	}
	return s.pieces, nil
}

// planningRecipe resolves the commit and computes its pieces. It only reads.
func (r *Rewriter) planningRecipe(s *splitRun) Recipe {
	return Recipe{Name: recipeSplit, Steps: []Step{
		{Name: "resolve commit", Run: func(ctx context.Context) error {
			return r.resolveSplitTarget(ctx, s)
		}},
		{Name: "plan pieces", Run: func(ctx context.Context) error {
			return r.planPieces(ctx, s)
		}},
	}}
}

func (r *Rewriter) resolveSplitTarget(ctx context.Context, s *splitRun) error {
	branch, err := r.runner.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	s.branch = branch

	hash, err := r.runner.ResolveRef(ctx, s.ref)
	if err != nil {
		return err
	}
	s.hash = hash

	parent, err := r.runner.ParentOf(ctx, hash)
	if err != nil {
		return err
	}
	s.parent = parent

	s.subject, err = r.runner.CommitSubject(ctx, hash)
	if err != nil {
		r.splog.Debug("Could not read subject of %s: %v", hash, err)
	}
	if s.subject == "" {
		s.subject = r.config.SplitSubjectFallback
	}
	if s.subject == "" {
		s.subject = config.DefaultSplitSubjectFallback
	}

	descendants, err := r.runner.ListCommits(ctx, hash, branch)
	if err != nil {
		return err
	}
	s.descendants = descendants
	return nil
}

func (r *Rewriter) planPieces(ctx context.Context, s *splitRun) error {
	text, err := r.runner.ShowCommitPatch(ctx, s.hash)
	if err != nil {
		return err
	}

	parsed := patch.Parse(text)
	if dropped := parsed.Dropped(); dropped > 0 {
		return carveerrors.NewStructuralLimitationError("",
			fmt.Sprintf("%d of %d changed files have no text hunks (binary or mode-only changes) and would be lost", dropped, parsed.Sections))
	}
	if len(parsed.Files) == 0 {
		return carveerrors.NewStructuralLimitationError("", "the commit has no text changes to split")
	}

	plan, err := planSplit(parsed.Files, s.points)
	if err != nil {
		return err
	}
	s.plan = plan

	s.pieces = make([]string, plan.Count)
	for i := range s.pieces {
		piece, err := plan.Piece(i)
		if err != nil {
			return err
		}
		if piece == "" {
			continue
		}
		if err := patch.Verify(piece); err != nil {
			return fmt.Errorf("piece %d: %w", i+1, err)
		}
		s.pieces[i] = piece
	}
	return nil
}

func piecePath(s *splitRun, i int) string {
	return filepath.Join(s.dir, fmt.Sprintf("piece-%03d.patch", i+1))
}

// writePieces writes every non-empty piece to the patch directory
func (r *Rewriter) writePieces(s *splitRun) error {
	for i, piece := range s.pieces {
		if piece == "" {
			continue
		}
		if err := os.WriteFile(piecePath(s, i), []byte(piece), 0600); err != nil {
			return fmt.Errorf("failed to write patch file: %w", err)
		}
	}
	return nil
}

// checkPieces applies the pieces in order to a detached worktree at the
// parent, so a piece that cannot apply fails before the branch is reset.
func (r *Rewriter) checkPieces(ctx context.Context, s *splitRun) error {
	worktree := filepath.Join(s.dir, "check")
	if err := r.runner.AddWorktreeDetached(ctx, worktree, s.parent); err != nil {
		return err
	}
	defer func() {
		if err := r.runner.RemoveWorktree(ctx, worktree); err != nil {
			r.splog.Debug("Failed to remove worktree %s: %v", worktree, err)
		}
	}()

	wt := r.runner.InDir(worktree)
	for i, piece := range s.pieces {
		if piece == "" {
			continue
		}
		if err := wt.ApplyPatch(ctx, piecePath(s, i), git.ApplyOptions{Tolerant: true}); err != nil {
			return &carveerrors.SplitOutOfRangeError{
				Reason: fmt.Sprintf("piece %d/%d does not apply on top of the pieces before it: %v", i+1, len(s.pieces), err),
			}
		}
	}
	return nil
}

// commitPiece applies piece i on top of the previous pieces and commits it
func (r *Rewriter) commitPiece(ctx context.Context, s *splitRun, i int) error {
	if s.pieces[i] == "" {
		r.splog.Debug("Piece %d/%d has no changes, skipping.", i+1, len(s.pieces))
		return nil
	}

	if err := r.runner.ApplyPatch(ctx, piecePath(s, i), git.ApplyOptions{Tolerant: true}); err != nil {
		return err
	}
	if err := r.runner.StageAll(ctx); err != nil {
		return err
	}

	staged, err := r.runner.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		r.splog.Debug("Piece %d/%d applied without changes, skipping.", i+1, len(s.pieces))
		return nil
	}

	hash, err := r.runner.Commit(ctx, fmt.Sprintf("%s (split %d/%d)", s.subject, i+1, len(s.pieces)))
	if err != nil {
		return err
	}
	s.commits = append(s.commits, hash)
	return nil
}

// cleanupPatchDir removes the piece patches unless they are kept for debugging
func (r *Rewriter) cleanupPatchDir(s *splitRun) {
	if s.dir == "" {
		return
	}
	if r.config.KeepPatches {
		r.splog.Info("Kept split patches in %s", s.dir)
		return
	}
	if err := os.RemoveAll(s.dir); err != nil {
		r.splog.Debug("Failed to remove %s: %v", s.dir, err)
	}
}
