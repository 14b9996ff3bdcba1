package rewrite

import (
	"carve.dev/carve/internal/config"
	"carve.dev/carve/internal/git"
	"carve.dev/carve/internal/tui"
)

// ProgressReporter is notified as each step of a recipe runs
type ProgressReporter interface {
	StepStarted(recipe, step string)
	StepCompleted(recipe, step string)
	StepFailed(recipe, step string, err error)
}

// Rewriter runs history rewrite recipes against one working tree
type Rewriter struct {
	runner   git.Runner
	splog    *tui.Splog
	config   config.Config
	reporter ProgressReporter
}

// Option configures a Rewriter
type Option func(*Rewriter)

// WithReporter sets the progress reporter. By default steps are logged
// through the Rewriter's Splog.
func WithReporter(reporter ProgressReporter) Option {
	return func(r *Rewriter) {
		r.reporter = reporter
	}
}

// WithConfig sets the effective repository configuration
func WithConfig(cfg config.Config) Option {
	return func(r *Rewriter) {
		r.config = cfg
	}
}

// New creates a Rewriter for the working tree runner acts on
func New(runner git.Runner, splog *tui.Splog, opts ...Option) *Rewriter {
	if splog == nil {
		splog = tui.NewSplog()
	}
	r := &Rewriter{
		runner: runner,
		splog:  splog,
		config: config.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.reporter == nil {
		r.reporter = tui.NewSplogProgressReporter(splog)
	}
	return r
}

// remote returns the configured remote, falling back to the default
func (r *Rewriter) remote() string {
	if r.config.Remote == "" {
		return config.DefaultRemote
	}
	return r.config.Remote
}
