// Package maven implements the maven2 repository layout: metadata extraction,
// the remote fetch port and readers for pom.xml and Gradle version catalogs.
package maven

import (
	"strings"

	"github.com/git-pkgs/outdated/internal/core"
)

const (
	CentralURL    = "https://repo1.maven.org/maven2/"
	GoogleURL     = "https://dl.google.com/dl/android/maven2/"
	GoogleAsiaURL = "https://maven-central-asia.storage-download.googleapis.com/maven2/"
	GradleURL     = "https://plugins.gradle.org/m2/"

	metadataFile = "maven-metadata.xml"
)

func init() {
	core.Register("central", CentralURL)
	core.Register("google", GoogleURL)
	core.Register("google-asia", GoogleAsiaURL)
	core.Register("gradle-plugins", GradleURL)
}

// MetadataAccept is the Accept header sent for metadata requests.
const MetadataAccept = "application/xml, text/xml;q=0.9, */*;q=0.1"

// NewURLs returns the maven2 layout rooted at baseURL. Metadata lives at
// <base><group/as/path>/<artifact>/maven-metadata.xml.
func NewURLs(baseURL string) core.URLBuilder {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	browse := func(groupID, artifactID string) string {
		if groupID == "" || artifactID == "" {
			return ""
		}
		return baseURL + core.ArtifactCoordinate{GroupID: groupID}.GroupPath() + "/" + artifactID + "/"
	}
	return &core.BaseURLs{
		BrowseFn: browse,
		MetadataFn: func(groupID, artifactID string) string {
			if dir := browse(groupID, artifactID); dir != "" {
				return dir + metadataFile
			}
			return ""
		},
		PURLFn: func(groupID, artifactID string) string {
			return core.PURL(core.ArtifactCoordinate{GroupID: groupID, ArtifactID: artifactID})
		},
	}
}

// ParseCoordinates splits "group:artifact[:version]".
// Returns empty strings if the input has fewer than two parts.
func ParseCoordinates(s string) (groupID, artifactID, version string) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		return parts[0], parts[1], ""
	case 3:
		return parts[0], parts[1], parts[2]
	default:
		if len(parts) > 3 {
			// group:artifact:packaging:version or with classifier
			return parts[0], parts[1], parts[len(parts)-1]
		}
		return "", "", ""
	}
}
