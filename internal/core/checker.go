package core

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/git-pkgs/outdated/internal/logger"
)

// Checker classifies artifacts as outdated against remote repository metadata.
type Checker struct {
	port        RemoteFetchPort
	output      OutputPort
	extract     TimestampExtractor
	clock       Clock
	concurrency int
	ignore      []string
	onNotFound  func(NotFound)
	log         *logger.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock sets the time source used for the staleness cutoff.
func WithClock(c Clock) Option {
	return func(ch *Checker) {
		ch.clock = c
	}
}

// WithConcurrency sets how many artifacts are fetched at once.
// Values below 2 fetch sequentially.
func WithConcurrency(n int) Option {
	return func(ch *Checker) {
		ch.concurrency = n
	}
}

// WithIgnore skips artifacts whose "group:artifact" matches any of the glob patterns.
func WithIgnore(patterns ...string) Option {
	return func(ch *Checker) {
		ch.ignore = append(ch.ignore, patterns...)
	}
}

// WithNotFoundHandler registers a callback invoked for every NotFound outcome,
// in input order. It does not affect what is sent to the output port.
func WithNotFoundHandler(fn func(NotFound)) Option {
	return func(ch *Checker) {
		ch.onNotFound = fn
	}
}

// WithLogger sets the logger. Defaults to the package-level logger.
func WithLogger(l *logger.Logger) Option {
	return func(ch *Checker) {
		ch.log = l
	}
}

// NewChecker creates a checker that fetches through port, parses metadata with
// extract and reports outdated artifacts to output.
func NewChecker(port RemoteFetchPort, output OutputPort, extract TimestampExtractor, opts ...Option) *Checker {
	c := &Checker{
		port:        port,
		output:      output,
		extract:     extract,
		clock:       SystemClock{},
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Default()
	}
	return c
}

// VerifyArtifacts fetches every artifact from repositories and sends the ones
// last updated more than thresholdYears ago to the output port.
//
// Artifacts are checked in order and duplicates are checked independently.
// NotFound outcomes are dropped. The output port is called exactly once when
// at least one artifact is outdated and not at all otherwise. The only error
// returned is the output port's.
func (c *Checker) VerifyArtifacts(ctx context.Context, artifacts []ArtifactCoordinate, repositories []RemoteRepository, thresholdYears int) error {
	if len(repositories) == 0 && len(artifacts) > 0 {
		c.log.Warn("No repositories to check, every artifact will be reported as not found",
			logger.Int("artifacts", len(artifacts)))
	}

	candidates := make([]RemoteArtifactCandidate, 0, len(artifacts))
	for _, a := range artifacts {
		if c.ignored(a) {
			c.log.Debug("Skipping ignored artifact", logger.String("artifact", a.String()))
			continue
		}
		candidates = append(candidates, RemoteArtifactCandidate{
			Artifact:             a,
			RepositoryCandidates: repositories,
		})
	}

	outcomes := fetchAll(ctx, c.port, c.extract, candidates, c.concurrency)
	now := c.clock.Now()

	var outdated []LatestRemoteArtifact
	var found, missing int
	for _, outcome := range outcomes {
		switch o := outcome.(type) {
		case Found:
			found++
			if o.Latest.IsOutdatedAt(thresholdYears, now) {
				outdated = append(outdated, o.Latest)
			}
		case NotFound:
			missing++
			c.log.Debug("Artifact not found in any repository",
				logger.String("artifact", o.Candidate.Artifact.String()),
				logger.Int("repositories", len(o.Candidate.RepositoryCandidates)))
			if c.onNotFound != nil {
				c.onNotFound(o)
			}
		}
	}

	c.log.Info("Outdated check complete",
		logger.Int("checked", len(candidates)),
		logger.Int("found", found),
		logger.Int("not_found", missing),
		logger.Int("outdated", len(outdated)),
		logger.Int("threshold_years", thresholdYears))

	if len(outdated) == 0 {
		return nil
	}
	return c.output.Output(ctx, outdated)
}

func (c *Checker) ignored(a ArtifactCoordinate) bool {
	id := a.String()
	for _, pattern := range c.ignore {
		if ok, err := doublestar.Match(pattern, id); err == nil && ok {
			return true
		}
	}
	return false
}
