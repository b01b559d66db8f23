package fetch

import (
	"errors"
	"sync"

	"github.com/git-pkgs/outdated/client"
	"github.com/git-pkgs/outdated/internal/core"
)

var ErrNoMetadataURL = errors.New("no metadata URL available")

// Layout builds the URL scheme for a repository base URL.
type Layout func(baseURL string) client.URLBuilder

// Resolver determines metadata document URLs for artifacts in a repository.
type Resolver struct {
	layout   Layout
	builders map[string]client.URLBuilder
	mu       sync.Mutex
}

// NewResolver creates a resolver using layout for every repository.
func NewResolver(layout Layout) *Resolver {
	return &Resolver{
		layout:   layout,
		builders: make(map[string]client.URLBuilder),
	}
}

// DocumentInfo describes where a metadata document lives.
type DocumentInfo struct {
	URL string
}

// Resolve returns the metadata document location for artifact in repo.
func (r *Resolver) Resolve(repo core.RemoteRepository, artifact core.ArtifactCoordinate) (*DocumentInfo, error) {
	urls := r.builder(repo)
	u := urls.Metadata(artifact.GroupID, artifact.ArtifactID)
	if u == "" {
		return nil, ErrNoMetadataURL
	}
	return &DocumentInfo{URL: u}, nil
}

func (r *Resolver) builder(repo core.RemoteRepository) client.URLBuilder {
	base := repo.NormalizedURL()

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.builders[base]; ok {
		return b
	}
	b := r.layout(base)
	r.builders[base] = b
	return b
}
