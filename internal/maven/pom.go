package maven

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/git-pkgs/outdated/internal/core"
)

// Dependency is a dependency declared in a pom.xml.
type Dependency struct {
	Coordinate core.ArtifactCoordinate
	Version    string
	Scope      string
	Managed    bool // declared under dependencyManagement
}

// ReadPOMDependencies returns the dependencies declared in a pom.xml, in
// document order: direct dependencies first, then dependencyManagement entries.
// ${...} references are resolved from <properties> and project.* values;
// entries whose groupId or artifactId stays unresolved are skipped.
func ReadPOMDependencies(r io.Reader) ([]Dependency, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading pom: %w", err)
	}
	project := doc.Root()
	if project == nil || project.Tag != "project" {
		return nil, fmt.Errorf("reading pom: root element is not <project>")
	}

	props := pomProperties(project)

	var deps []Dependency
	collect := func(path string, managed bool) {
		for _, el := range project.FindElements(path) {
			groupID := expand(childText(el, "groupId"), props)
			artifactID := expand(childText(el, "artifactId"), props)
			if strings.Contains(groupID, "${") || strings.Contains(artifactID, "${") {
				continue
			}
			c, err := core.NewArtifactCoordinate(groupID, artifactID)
			if err != nil {
				continue
			}
			deps = append(deps, Dependency{
				Coordinate: c,
				Version:    expand(childText(el, "version"), props),
				Scope:      childText(el, "scope"),
				Managed:    managed,
			})
		}
	}
	collect("./dependencies/dependency", false)
	collect("./dependencyManagement/dependencies/dependency", true)

	return deps, nil
}

func pomProperties(project *etree.Element) map[string]string {
	props := make(map[string]string)

	groupID := childText(project, "groupId")
	version := childText(project, "version")
	if parent := project.SelectElement("parent"); parent != nil {
		if groupID == "" {
			groupID = childText(parent, "groupId")
		}
		if version == "" {
			version = childText(parent, "version")
		}
		props["project.parent.groupId"] = childText(parent, "groupId")
		props["project.parent.version"] = childText(parent, "version")
	}
	props["project.groupId"] = groupID
	props["project.artifactId"] = childText(project, "artifactId")
	props["project.version"] = version

	if p := project.SelectElement("properties"); p != nil {
		for _, el := range p.ChildElements() {
			props[el.Tag] = strings.TrimSpace(el.Text())
		}
	}
	return props
}

// expand substitutes ${name} references, leaving unknown ones in place.
func expand(s string, props map[string]string) string {
	for i := 0; i < 10 && strings.Contains(s, "${"); i++ {
		start := strings.Index(s, "${")
		end := strings.Index(s[start:], "}")
		if end < 0 {
			return s
		}
		name := s[start+2 : start+end]
		value, ok := props[name]
		if !ok || value == "" {
			return s
		}
		s = s[:start] + value + s[start+end+1:]
	}
	return s
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}
