// Package outdated finds dependencies whose latest publish in a Maven
// repository is older than a threshold.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/git-pkgs/outdated"
//		_ "github.com/git-pkgs/outdated/all"
//	)
//
//	repos, err := outdated.ResolveRepositories([]string{"central", "google"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report := outdated.OutputFunc(func(ctx context.Context, stale []outdated.LatestRemoteArtifact) error {
//		for _, a := range stale {
//			fmt.Println(a.Artifact, a.LastUpdated)
//		}
//		return nil
//	})
//
//	checker := outdated.New(report, outdated.WithConcurrency(8))
//	err = checker.VerifyArtifacts(ctx, artifacts, repos, 2)
package outdated

import (
	"github.com/git-pkgs/purl"

	"github.com/git-pkgs/outdated/fetch"
	"github.com/git-pkgs/outdated/internal/core"
	"github.com/git-pkgs/outdated/internal/maven"
)

// Re-export types from internal/core
type (
	// ArtifactCoordinate identifies a dependency independent of its version.
	ArtifactCoordinate = core.ArtifactCoordinate

	// RemoteRepository is a remote location that may host published artifacts.
	RemoteRepository = core.RemoteRepository

	// RemoteArtifactCandidate is an artifact to be searched across repositories in order.
	RemoteArtifactCandidate = core.RemoteArtifactCandidate

	// LatestRemoteArtifact is the latest published state of an artifact in one repository.
	LatestRemoteArtifact = core.LatestRemoteArtifact

	// FetchOutcome is either Found or NotFound.
	FetchOutcome = core.FetchOutcome
	Found        = core.Found
	NotFound     = core.NotFound

	// TimestampExtractor parses a metadata document into its last-updated instant.
	TimestampExtractor = core.TimestampExtractor

	// RemoteFetchPort resolves a candidate across its repositories.
	RemoteFetchPort = core.RemoteFetchPort

	// OutputPort receives the outdated artifacts of a run.
	OutputPort = core.OutputPort
	OutputFunc = core.OutputFunc
	FetchFunc  = core.FetchFunc

	Clock     = core.Clock
	ClockFunc = core.ClockFunc

	// Checker classifies artifacts as outdated.
	Checker = core.Checker
	Option  = core.Option

	// URLBuilder constructs URLs for a repository layout.
	URLBuilder = core.URLBuilder
)

// Error types
type (
	MalformedMetadataError = core.MalformedMetadataError
	InvalidCoordinateError = core.InvalidCoordinateError
	UnknownRepositoryError = core.UnknownRepositoryError
)

// Checker options
var (
	WithClock           = core.WithClock
	WithConcurrency     = core.WithConcurrency
	WithIgnore          = core.WithIgnore
	WithNotFoundHandler = core.WithNotFoundHandler
)

// New creates a checker that looks artifacts up over HTTP in maven2 layout
// repositories and reports outdated ones to output.
func New(output OutputPort, opts ...Option) *Checker {
	return core.NewChecker(maven.NewPort(nil, nil), output, maven.ExtractLastUpdated, opts...)
}

// NewChecker creates a checker with a custom fetch port and extractor.
func NewChecker(port RemoteFetchPort, output OutputPort, extract TimestampExtractor, opts ...Option) *Checker {
	return core.NewChecker(port, output, extract, opts...)
}

// NewPort returns the HTTP fetch port for maven2 layout repositories.
// If fetcher is nil, a retrying fetcher behind per-host circuit breakers is used.
func NewPort(fetcher fetch.FetcherInterface) RemoteFetchPort {
	return maven.NewPort(fetcher, nil)
}

// ExtractLastUpdated reads versioning/lastUpdated from a maven-metadata.xml document.
var ExtractLastUpdated TimestampExtractor = maven.ExtractLastUpdated

// NewMavenURLs returns the maven2 layout rooted at baseURL.
func NewMavenURLs(baseURL string) URLBuilder {
	return maven.NewURLs(baseURL)
}

// Register adds a well-known repository.
func Register(id, url string) {
	core.Register(id, url)
}

// KnownRepositories returns every registered repository sorted by id.
// Note: repository sets must be imported to be registered.
func KnownRepositories() []RemoteRepository {
	return core.KnownRepositories()
}

// LookupRepository returns the registered repository for id.
func LookupRepository(id string) (RemoteRepository, bool) {
	return core.LookupRepository(id)
}

// ResolveRepositories turns ids, "id=url" pairs or URLs into repositories.
func ResolveRepositories(refs []string) ([]RemoteRepository, error) {
	return core.ResolveRepositories(refs)
}

// ParseCoordinate parses "group:artifact", "group:artifact:version" or a maven PURL.
func ParseCoordinate(s string) (ArtifactCoordinate, error) {
	return core.ParseCoordinate(s)
}

// BuildURLs returns the metadata, browse and purl URLs of an artifact.
func BuildURLs(urls URLBuilder, a ArtifactCoordinate) map[string]string {
	return core.BuildURLs(urls, a.GroupID, a.ArtifactID)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string into its components.
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}
