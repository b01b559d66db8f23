package maven

import (
	"context"
	"fmt"

	"github.com/git-pkgs/outdated/fetch"
	"github.com/git-pkgs/outdated/internal/core"
	"github.com/git-pkgs/outdated/internal/logger"
)

// Port resolves artifacts against maven2 layout repositories over HTTP.
type Port struct {
	fetcher  fetch.FetcherInterface
	resolver *fetch.Resolver
	log      *logger.Logger
}

var _ core.RemoteFetchPort = (*Port)(nil)

// NewPort creates a fetch port. If fetcher is nil a default fetcher wrapped in
// a circuit breaker is used.
func NewPort(fetcher fetch.FetcherInterface, log *logger.Logger) *Port {
	if fetcher == nil {
		fetcher = fetch.NewCircuitBreakerFetcher(fetch.NewFetcher(fetch.WithHeader("Accept", MetadataAccept)), 5)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Port{
		fetcher:  fetcher,
		resolver: fetch.NewResolver(NewURLs),
		log:      log,
	}
}

// FetchLatestRemoteArtifact tries each repository of the candidate in order and
// returns the first one whose metadata document extracts successfully.
func (p *Port) FetchLatestRemoteArtifact(ctx context.Context, candidate core.RemoteArtifactCandidate, extract core.TimestampExtractor) core.FetchOutcome {
	for _, repo := range candidate.RepositoryCandidates {
		latest, err := p.fetchFrom(ctx, repo, candidate.Artifact, extract)
		if err != nil {
			p.log.Debug("Repository did not yield metadata",
				logger.String("artifact", candidate.Artifact.String()),
				logger.String("repository", repo.ID),
				logger.Err(err))
			continue
		}
		return core.Found{Latest: latest}
	}
	return core.NotFound{Candidate: candidate}
}

func (p *Port) fetchFrom(ctx context.Context, repo core.RemoteRepository, artifact core.ArtifactCoordinate, extract core.TimestampExtractor) (core.LatestRemoteArtifact, error) {
	info, err := p.resolver.Resolve(repo, artifact)
	if err != nil {
		return core.LatestRemoteArtifact{}, err
	}

	doc, err := p.fetcher.Fetch(ctx, info.URL)
	if err != nil {
		return core.LatestRemoteArtifact{}, fmt.Errorf("fetching %s: %w", info.URL, err)
	}
	defer func() { _ = doc.Body.Close() }()

	lastUpdated, err := extract(doc.Body)
	if err != nil {
		return core.LatestRemoteArtifact{}, fmt.Errorf("parsing %s: %w", info.URL, err)
	}

	return core.NewLatestRemoteArtifact(repo, artifact, lastUpdated), nil
}
