package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"carve.dev/carve/internal/config"
	"carve.dev/carve/internal/git"
	"carve.dev/carve/internal/rewrite"
	"carve.dev/carve/internal/tui"
)

// Context provides access to the git runner, logger and configuration for commands
type Context struct {
	Context  context.Context
	Runner   git.Runner
	Splog    *tui.Splog
	Config   config.Config
	RepoRoot string
}

// NewContext creates a context for the repository at repoRoot
func NewContext(ctx context.Context, runner git.Runner, splog *tui.Splog, cfg config.Config, repoRoot string) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Context:  ctx,
		Runner:   runner,
		Splog:    splog,
		Config:   cfg,
		RepoRoot: repoRoot,
	}
}

// Rewriter returns a Rewriter bound to this context's runner, logger and configuration
func (c *Context) Rewriter(opts ...rewrite.Option) *rewrite.Rewriter {
	opts = append([]rewrite.Option{rewrite.WithConfig(c.Config)}, opts...)
	return rewrite.New(c.Runner, c.Splog, opts...)
}

// GetContext builds the context for the repository containing the process
// working directory. Console output goes to out, or stdout when out is nil;
// every message is also written to the rotated log file.
func GetContext(ctx context.Context, out io.Writer) (*Context, error) {
	repoRoot, err := git.GetRepoRoot("")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if out == nil {
		out = os.Stdout
	}
	splog, err := tui.NewSplogWithConfig(out, tui.GetLogFilePath())
	if err != nil {
		splog.Debug("File logging disabled: %v", err)
	}
	splog.SetDebug(debugEnabled)

	return NewContext(ctx, git.NewRunner(repoRoot), splog, cfg, repoRoot), nil
}

var debugEnabled = os.Getenv("DEBUG") != ""

// SetDebug turns on debug output for every context created afterwards
func SetDebug(debug bool) {
	debugEnabled = debugEnabled || debug
}
