package core

import (
	"context"
	"io"
	"time"
)

// TimestampExtractor parses a metadata document into its last-updated instant (UTC).
type TimestampExtractor func(r io.Reader) (time.Time, error)

// RemoteFetchPort resolves a candidate across its repositories.
//
// Implementations try RepositoryCandidates in order and return Found for the
// first repository whose metadata document extracts successfully. Missing
// documents, transport failures and malformed metadata all move on to the next
// repository; when every repository fails the result is NotFound carrying the
// candidate.
type RemoteFetchPort interface {
	FetchLatestRemoteArtifact(ctx context.Context, candidate RemoteArtifactCandidate, extract TimestampExtractor) FetchOutcome
}

// OutputPort receives the outdated artifacts of a run, in input order.
// It is called at most once per run and never with an empty slice.
type OutputPort interface {
	Output(ctx context.Context, outdated []LatestRemoteArtifact) error
}

// OutputFunc adapts a function to the OutputPort interface.
type OutputFunc func(ctx context.Context, outdated []LatestRemoteArtifact) error

func (f OutputFunc) Output(ctx context.Context, outdated []LatestRemoteArtifact) error {
	return f(ctx, outdated)
}

// FetchFunc adapts a function to the RemoteFetchPort interface.
type FetchFunc func(ctx context.Context, candidate RemoteArtifactCandidate, extract TimestampExtractor) FetchOutcome

func (f FetchFunc) FetchLatestRemoteArtifact(ctx context.Context, candidate RemoteArtifactCandidate, extract TimestampExtractor) FetchOutcome {
	return f(ctx, candidate, extract)
}
