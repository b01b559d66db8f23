// Package clojars registers the Clojars repository and parses Leiningen style coordinates.
package clojars

import (
	"strings"

	"github.com/git-pkgs/outdated/internal/core"
)

const DefaultURL = "https://repo.clojars.org/"

func init() {
	core.Register("clojars", DefaultURL)
}

// ParseCoordinates splits a Leiningen "group/artifact" name.
// A bare name uses the same value for group and artifact.
func ParseCoordinates(name string) (group, artifact string) {
	if g, a, ok := strings.Cut(name, "/"); ok {
		return g, a
	}
	return name, name
}

// Coordinate converts a Leiningen name into an artifact coordinate.
func Coordinate(name string) (core.ArtifactCoordinate, error) {
	g, a := ParseCoordinates(strings.TrimSpace(name))
	return core.NewArtifactCoordinate(g, a)
}
