package fetch

import (
	"errors"
	"testing"

	"github.com/git-pkgs/outdated/client"
	"github.com/git-pkgs/outdated/internal/core"
)

func testLayout(baseURL string) client.URLBuilder {
	return &client.BaseURLs{
		MetadataFn: func(groupID, artifactID string) string {
			return baseURL + core.ArtifactCoordinate{GroupID: groupID}.GroupPath() + "/" + artifactID + "/maven-metadata.xml"
		},
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testLayout)
	artifact := core.ArtifactCoordinate{GroupID: "org.apache.maven", ArtifactID: "maven-core"}

	tests := []struct {
		name    string
		repo    core.RemoteRepository
		wantURL string
	}{
		{
			name:    "trailing slash",
			repo:    core.RemoteRepository{ID: "central", URL: "https://repo1.maven.org/maven2/"},
			wantURL: "https://repo1.maven.org/maven2/org/apache/maven/maven-core/maven-metadata.xml",
		},
		{
			name:    "no trailing slash",
			repo:    core.RemoteRepository{ID: "google-asia", URL: "https://maven-central-asia.storage-download.googleapis.com"},
			wantURL: "https://maven-central-asia.storage-download.googleapis.com/org/apache/maven/maven-core/maven-metadata.xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := r.Resolve(tt.repo, artifact)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if info.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", info.URL, tt.wantURL)
			}
		})
	}
}

func TestResolveNoMetadataURL(t *testing.T) {
	r := NewResolver(func(string) client.URLBuilder { return &client.BaseURLs{} })

	_, err := r.Resolve(core.RemoteRepository{ID: "x", URL: "https://example.com"}, core.ArtifactCoordinate{GroupID: "g", ArtifactID: "a"})
	if !errors.Is(err, ErrNoMetadataURL) {
		t.Errorf("expected ErrNoMetadataURL, got %v", err)
	}
}

func TestResolverCachesLayoutPerRepository(t *testing.T) {
	calls := 0
	r := NewResolver(func(base string) client.URLBuilder {
		calls++
		return testLayout(base)
	})

	repo := core.RemoteRepository{ID: "central", URL: "https://repo1.maven.org/maven2"}
	for range 3 {
		if _, err := r.Resolve(repo, core.ArtifactCoordinate{GroupID: "g", ArtifactID: "a"}); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("layout built %d times, want 1", calls)
	}
}
