package report

import (
	"context"
	"os"
	"sync"

	"github.com/git-pkgs/outdated/internal/core"
)

// Recorder wraps an output port and remembers what it was sent.
type Recorder struct {
	next core.OutputPort

	mu       sync.Mutex
	calls    int
	outdated []core.LatestRemoteArtifact
}

// NewRecorder wraps next. A nil next only records.
func NewRecorder(next core.OutputPort) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) Output(ctx context.Context, outdated []core.LatestRemoteArtifact) error {
	r.mu.Lock()
	r.calls++
	r.outdated = append(r.outdated, outdated...)
	r.mu.Unlock()

	if r.next == nil {
		return nil
	}
	return r.next.Output(ctx, outdated)
}

// Calls returns how many times Output was invoked.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Outdated returns every artifact passed to Output.
func (r *Recorder) Outdated() []core.LatestRemoteArtifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.LatestRemoteArtifact(nil), r.outdated...)
}

// IsCI reports whether the process runs under a CI system.
func IsCI() bool {
	return os.Getenv("CI") == "true" || IsGitHubActions()
}

// IsGitHubActions reports whether the process runs under GitHub Actions.
func IsGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// DefaultFormat picks github annotations under GitHub Actions and text otherwise.
func DefaultFormat() Format {
	if IsGitHubActions() {
		return FormatGitHub
	}
	return FormatText
}
