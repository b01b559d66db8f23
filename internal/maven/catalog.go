package maven

import (
	"fmt"
	"io"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/git-pkgs/outdated/internal/core"
)

type versionCatalog struct {
	Libraries map[string]any `toml:"libraries"`
}

// CatalogLibrary is one entry of a Gradle version catalog's [libraries] table.
type CatalogLibrary struct {
	Alias      string
	Coordinate core.ArtifactCoordinate
}

// ReadVersionCatalog returns the libraries of a Gradle version catalog
// (libs.versions.toml) sorted by alias. Both the "group:artifact:version"
// string notation and the module / group+name table notations are accepted.
func ReadVersionCatalog(r io.Reader) ([]CatalogLibrary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading version catalog: %w", err)
	}

	var catalog versionCatalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing version catalog: %w", err)
	}

	aliases := make([]string, 0, len(catalog.Libraries))
	for alias := range catalog.Libraries {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	libs := make([]CatalogLibrary, 0, len(aliases))
	for _, alias := range aliases {
		groupID, artifactID := catalogCoordinates(catalog.Libraries[alias])
		c, err := core.NewArtifactCoordinate(groupID, artifactID)
		if err != nil {
			return nil, fmt.Errorf("version catalog library %q: %w", alias, err)
		}
		libs = append(libs, CatalogLibrary{Alias: alias, Coordinate: c})
	}
	return libs, nil
}

func catalogCoordinates(entry any) (groupID, artifactID string) {
	switch v := entry.(type) {
	case string:
		g, a, _ := ParseCoordinates(v)
		return g, a
	case map[string]any:
		if module, ok := v["module"].(string); ok {
			g, a, _ := ParseCoordinates(module)
			return g, a
		}
		g, _ := v["group"].(string)
		n, _ := v["name"].(string)
		return g, n
	}
	return "", ""
}
