package core

import (
	"strings"

	packageurl "github.com/package-url/packageurl-go"
)

const mavenType = "maven"

// ParseCoordinate parses "group:artifact", "group:artifact:version" or a maven
// PURL ("pkg:maven/group/artifact[@version]"). Any version is discarded.
func ParseCoordinate(s string) (ArtifactCoordinate, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "pkg:") {
		return CoordinateFromPURL(s)
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return ArtifactCoordinate{}, &InvalidCoordinateError{
			Input:  s,
			Reason: "expected group:artifact[:version]",
		}
	}
	c, err := NewArtifactCoordinate(parts[0], parts[1])
	if err != nil {
		return ArtifactCoordinate{}, &InvalidCoordinateError{Input: s, Reason: "groupId and artifactId must be non-empty"}
	}
	return c, nil
}

// CoordinateFromPURL converts a maven PURL into a coordinate.
func CoordinateFromPURL(purl string) (ArtifactCoordinate, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return ArtifactCoordinate{}, &InvalidCoordinateError{Input: purl, Reason: err.Error()}
	}
	if p.Type != mavenType {
		return ArtifactCoordinate{}, &InvalidCoordinateError{
			Input:  purl,
			Reason: "unsupported package type " + p.Type,
		}
	}
	c, err := NewArtifactCoordinate(p.Namespace, p.Name)
	if err != nil {
		return ArtifactCoordinate{}, &InvalidCoordinateError{Input: purl, Reason: "missing namespace or name"}
	}
	return c, nil
}

// PURL renders the coordinate as a maven Package URL without version.
func PURL(a ArtifactCoordinate) string {
	return packageurl.NewPackageURL(mavenType, a.GroupID, a.ArtifactID, "", nil, "").ToString()
}
