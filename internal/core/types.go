// Package core provides the shared data model, ports and the outdated-check orchestrator.
package core

import (
	"strings"
	"time"
)

// ArtifactCoordinate identifies a dependency independent of its version.
type ArtifactCoordinate struct {
	GroupID    string
	ArtifactID string
}

// NewArtifactCoordinate returns a coordinate, rejecting empty fields.
func NewArtifactCoordinate(groupID, artifactID string) (ArtifactCoordinate, error) {
	groupID = strings.TrimSpace(groupID)
	artifactID = strings.TrimSpace(artifactID)
	if groupID == "" || artifactID == "" {
		return ArtifactCoordinate{}, &InvalidCoordinateError{
			Input:  groupID + ":" + artifactID,
			Reason: "groupId and artifactId must be non-empty",
		}
	}
	return ArtifactCoordinate{GroupID: groupID, ArtifactID: artifactID}, nil
}

// String renders the coordinate as "group:artifact".
func (a ArtifactCoordinate) String() string {
	return a.GroupID + ":" + a.ArtifactID
}

// GroupPath returns the groupId with dots replaced by slashes, as used in repository layouts.
func (a ArtifactCoordinate) GroupPath() string {
	return strings.ReplaceAll(a.GroupID, ".", "/")
}

// RemoteRepository is a remote location that may host published artifacts.
type RemoteRepository struct {
	ID  string
	URL string
}

// NormalizedURL returns the base URL with exactly one trailing slash.
func (r RemoteRepository) NormalizedURL() string {
	if strings.HasSuffix(r.URL, "/") {
		return r.URL
	}
	return r.URL + "/"
}

// RemoteArtifactCandidate is an artifact to be searched across repositories in order.
type RemoteArtifactCandidate struct {
	Artifact             ArtifactCoordinate
	RepositoryCandidates []RemoteRepository
}

// LatestRemoteArtifact is the most recently published state of an artifact in one repository.
type LatestRemoteArtifact struct {
	Repository  RemoteRepository
	Artifact    ArtifactCoordinate
	LastUpdated time.Time // always UTC
}

// NewLatestRemoteArtifact normalizes lastUpdated to UTC.
func NewLatestRemoteArtifact(repo RemoteRepository, artifact ArtifactCoordinate, lastUpdated time.Time) LatestRemoteArtifact {
	return LatestRemoteArtifact{
		Repository:  repo,
		Artifact:    artifact,
		LastUpdated: lastUpdated.UTC(),
	}
}

// IsOutdated reports whether the artifact was last updated more than thresholdYears ago.
// The current time is sampled on every call.
func (l LatestRemoteArtifact) IsOutdated(thresholdYears int) bool {
	return l.IsOutdatedAt(thresholdYears, time.Now())
}

// IsOutdatedAt reports whether LastUpdated is strictly before now minus thresholdYears.
func (l LatestRemoteArtifact) IsOutdatedAt(thresholdYears int, now time.Time) bool {
	return l.LastUpdated.UTC().Before(SubtractYears(now.UTC(), thresholdYears))
}

// Age returns how long ago the artifact was last updated relative to now.
func (l LatestRemoteArtifact) Age(now time.Time) time.Duration {
	return now.UTC().Sub(l.LastUpdated)
}

// FetchOutcome is the result of resolving one candidate across its repositories.
// It is implemented only by Found and NotFound.
type FetchOutcome interface {
	fetchOutcome()
}

// Found carries the artifact resolved from the first repository that yielded metadata.
type Found struct {
	Latest LatestRemoteArtifact
}

// NotFound carries the original candidate when no repository yielded metadata.
type NotFound struct {
	Candidate RemoteArtifactCandidate
}

func (Found) fetchOutcome()    {}
func (NotFound) fetchOutcome() {}
