package maven

import (
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/git-pkgs/outdated/internal/core"
)

// lastUpdatedLayout is the yyyyMMddHHmmss format used by maven-metadata.xml.
const lastUpdatedLayout = "20060102150405"

var _ core.TimestampExtractor = ExtractLastUpdated

// ExtractLastUpdated reads a maven-metadata.xml document and returns the
// <versioning><lastUpdated> instant in UTC.
func ExtractLastUpdated(r io.Reader) (time.Time, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return time.Time{}, &core.MalformedMetadataError{Reason: "document is not well-formed XML", Err: err}
	}

	if err := singleRoot(doc); err != nil {
		return time.Time{}, err
	}
	root := doc.Root()

	versioning := root.FindElement(".//versioning")
	if versioning == nil {
		return time.Time{}, &core.MalformedMetadataError{Reason: "missing versioning element"}
	}

	lastUpdated := versioning.FindElement(".//lastUpdated")
	if lastUpdated == nil {
		return time.Time{}, &core.MalformedMetadataError{Reason: "missing lastUpdated element"}
	}

	return ParseLastUpdated(lastUpdated.Text())
}

// singleRoot rejects documents that etree tolerates but XML does not: no
// root, more than one root, or text outside the root element.
func singleRoot(doc *etree.Document) error {
	switch n := len(doc.ChildElements()); {
	case n == 0:
		return &core.MalformedMetadataError{Reason: "document has no root element"}
	case n > 1:
		return &core.MalformedMetadataError{Reason: "document has more than one root element"}
	}
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return &core.MalformedMetadataError{Reason: "document has content outside the root element"}
		}
	}
	return nil
}

// ParseLastUpdated parses a yyyyMMddHHmmss value as UTC. The value must be
// exactly 14 ASCII digits.
func ParseLastUpdated(value string) (time.Time, error) {
	if len(value) != len(lastUpdatedLayout) || strings.IndexFunc(value, notDigit) >= 0 {
		return time.Time{}, &core.MalformedMetadataError{Reason: "lastUpdated " + quote(value) + " is not 14 digits"}
	}

	t, err := time.ParseInLocation(lastUpdatedLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &core.MalformedMetadataError{Reason: "lastUpdated " + quote(value) + " is not a valid timestamp", Err: err}
	}
	return t, nil
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

func quote(s string) string {
	return `"` + s + `"`
}
