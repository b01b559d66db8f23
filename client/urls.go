// Package client describes how repository layouts map coordinates to URLs.
package client

import "fmt"

// URLBuilder constructs URLs for artifacts in one repository.
type URLBuilder interface {
	Metadata(groupID, artifactID string) string
	Browse(groupID, artifactID string) string
	PURL(groupID, artifactID string) string
}

// BaseURLs provides a default URLBuilder implementation.
type BaseURLs struct {
	MetadataFn func(groupID, artifactID string) string
	BrowseFn   func(groupID, artifactID string) string
	PURLFn     func(groupID, artifactID string) string
}

func (b *BaseURLs) Metadata(groupID, artifactID string) string {
	if b.MetadataFn != nil {
		return b.MetadataFn(groupID, artifactID)
	}
	return ""
}

func (b *BaseURLs) Browse(groupID, artifactID string) string {
	if b.BrowseFn != nil {
		return b.BrowseFn(groupID, artifactID)
	}
	return ""
}

func (b *BaseURLs) PURL(groupID, artifactID string) string {
	if b.PURLFn != nil {
		return b.PURLFn(groupID, artifactID)
	}
	return fmt.Sprintf("pkg:%s/%s/%s", "maven", groupID, artifactID)
}

// BuildURLs returns a map of all non-empty URLs for an artifact.
// Keys are "metadata", "browse" and "purl".
func BuildURLs(urls URLBuilder, groupID, artifactID string) map[string]string {
	result := make(map[string]string)
	if v := urls.Metadata(groupID, artifactID); v != "" {
		result["metadata"] = v
	}
	if v := urls.Browse(groupID, artifactID); v != "" {
		result["browse"] = v
	}
	if v := urls.PURL(groupID, artifactID); v != "" {
		result["purl"] = v
	}
	return result
}
