package tui

import (
	"fmt"
	"sync"
	"time"
)

// ProgressUpdate is one step transition of a rewrite
type ProgressUpdate struct {
	Type   string // "started", "completed" or "failed"
	Recipe string
	Step   string
	Error  error
}

// ChannelProgressReporter delivers step transitions on a buffered channel
type ChannelProgressReporter struct {
	updates chan ProgressUpdate
	once    sync.Once
}

// NewChannelProgressReporter creates a new channel-based progress reporter
func NewChannelProgressReporter() *ChannelProgressReporter {
	return &ChannelProgressReporter{
		updates: make(chan ProgressUpdate, 100),
	}
}

// Updates returns the channel for receiving updates
func (r *ChannelProgressReporter) Updates() <-chan ProgressUpdate {
	return r.updates
}

// Close closes the update channel (safe to call multiple times)
func (r *ChannelProgressReporter) Close() {
	r.once.Do(func() {
		close(r.updates)
	})
}

// StepStarted reports that a step has started
func (r *ChannelProgressReporter) StepStarted(recipe, step string) {
	r.updates <- ProgressUpdate{Type: "started", Recipe: recipe, Step: step}
}

// StepCompleted reports that a step has completed
func (r *ChannelProgressReporter) StepCompleted(recipe, step string) {
	r.updates <- ProgressUpdate{Type: "completed", Recipe: recipe, Step: step}
}

// StepFailed reports that a step has failed
func (r *ChannelProgressReporter) StepFailed(recipe, step string, err error) {
	r.updates <- ProgressUpdate{Type: "failed", Recipe: recipe, Step: step, Error: err}
}

// SplogProgressReporter writes step transitions through a Splog: starts and
// completions at debug level, failures as errors
type SplogProgressReporter struct {
	splog   *Splog
	mu      sync.Mutex
	started map[string]time.Time
}

// NewSplogProgressReporter creates a reporter that logs through splog
func NewSplogProgressReporter(splog *Splog) *SplogProgressReporter {
	return &SplogProgressReporter{splog: splog, started: make(map[string]time.Time)}
}

func stepKey(recipe, step string) string {
	return recipe + "/" + step
}

// StepStarted reports that a step has started
func (r *SplogProgressReporter) StepStarted(recipe, step string) {
	r.mu.Lock()
	r.started[stepKey(recipe, step)] = time.Now()
	r.mu.Unlock()
	r.splog.Debug("%s %s", ColorDim("▸ "+recipe+":"), step)
}

// StepCompleted reports that a step has completed
func (r *SplogProgressReporter) StepCompleted(recipe, step string) {
	r.splog.Debug("%s %s %s", ColorGreen("✓ "+recipe+":"), step, ColorDim(r.elapsed(recipe, step)))
}

// StepFailed reports that a step has failed
func (r *SplogProgressReporter) StepFailed(recipe, step string, err error) {
	r.splog.Error("%s failed at step %q after %s", recipe, step, r.elapsed(recipe, step))
	r.splog.Debug("%v", err)
}

func (r *SplogProgressReporter) elapsed(recipe, step string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	start, ok := r.started[stepKey(recipe, step)]
	if !ok {
		return ""
	}
	delete(r.started, stepKey(recipe, step))
	return fmt.Sprintf("(%s)", time.Since(start).Round(time.Millisecond))
}
