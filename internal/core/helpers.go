package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 1

// fetchAll resolves every candidate through port with at most concurrency
// fetches in flight. outcomes[i] always belongs to candidates[i].
func fetchAll(ctx context.Context, port RemoteFetchPort, extract TimestampExtractor, candidates []RemoteArtifactCandidate, concurrency int) []FetchOutcome {
	outcomes := make([]FetchOutcome, len(candidates))

	if concurrency <= 1 {
		for i, c := range candidates {
			outcomes[i] = fetchOne(ctx, port, extract, c)
		}
		return outcomes
	}

	// Fetch errors are folded into NotFound, so the group never cancels
	// sibling fetches.
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			outcomes[i] = fetchOne(ctx, port, extract, c)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// fetchOne guards against ports that return a nil outcome.
func fetchOne(ctx context.Context, port RemoteFetchPort, extract TimestampExtractor, c RemoteArtifactCandidate) FetchOutcome {
	outcome := port.FetchLatestRemoteArtifact(ctx, c, extract)
	if outcome == nil {
		return NotFound{Candidate: c}
	}
	return outcome
}
