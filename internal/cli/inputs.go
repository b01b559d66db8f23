package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/git-pkgs/outdated/internal/clojars"
	"github.com/git-pkgs/outdated/internal/core"
	"github.com/git-pkgs/outdated/internal/maven"
)

// inputs lists the places artifacts are read from.
type inputs struct {
	args           []string
	poms           []string
	catalogs       []string
	lists          []string
	includeManaged bool
}

// collect returns the artifacts of every input in order: positional
// arguments first, then pom files, version catalogs and list files.
func (in inputs) collect() ([]core.ArtifactCoordinate, error) {
	var artifacts []core.ArtifactCoordinate

	for _, arg := range in.args {
		a, err := parseArtifact(arg)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}

	for _, path := range in.poms {
		deps, err := readPOM(path)
		if err != nil {
			return nil, err
		}
		for _, d := range deps {
			if d.Managed && !in.includeManaged {
				continue
			}
			artifacts = append(artifacts, d.Coordinate)
		}
	}

	for _, path := range in.catalogs {
		libs, err := readCatalog(path)
		if err != nil {
			return nil, err
		}
		for _, lib := range libs {
			artifacts = append(artifacts, lib.Coordinate)
		}
	}

	for _, path := range in.lists {
		list, err := readList(path)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, list...)
	}

	return artifacts, nil
}

// parseArtifact accepts "group:artifact[:version]", a maven PURL, or a
// Leiningen style "group/artifact" name.
func parseArtifact(s string) (core.ArtifactCoordinate, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "pkg:") || strings.Contains(s, ":") {
		return core.ParseCoordinate(s)
	}
	return clojars.Coordinate(s)
}

func readPOM(path string) ([]maven.Dependency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	deps, err := maven.ReadPOMDependencies(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deps, nil
}

func readCatalog(path string) ([]maven.CatalogLibrary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	libs, err := maven.ReadVersionCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return libs, nil
}

// readList reads one artifact per line. Blank lines and # comments are skipped.
func readList(path string) ([]core.ArtifactCoordinate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var artifacts []core.ArtifactCoordinate
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		a, err := parseArtifact(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		artifacts = append(artifacts, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return artifacts, nil
}
