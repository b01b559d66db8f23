package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

func renderText(w io.Writer, r Report) error {
	noun := "dependencies"
	if r.Count == 1 {
		noun = "dependency"
	}
	if _, err := fmt.Fprintf(w, "%d outdated %s (not updated in %d %s)\n\n", r.Count, noun, r.ThresholdYears, plural(r.ThresholdYears, "year")); err != nil {
		return err
	}

	header := []string{"ARTIFACT", "REPOSITORY", "LAST UPDATED", "AGE"}
	rows := [][]string{header}
	for _, e := range r.Outdated {
		rows = append(rows, []string{
			e.Artifact,
			e.Repository,
			e.LastUpdated.Format(dateLayout),
			fmt.Sprintf("%d %s", e.AgeDays, plural(e.AgeDays, "day")),
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func renderJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func renderYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// renderGitHub emits GitHub Actions workflow commands.
func renderGitHub(w io.Writer, r Report) error {
	for _, e := range r.Outdated {
		msg := fmt.Sprintf("%s was last updated %s (%d days ago) in %s",
			e.Artifact, e.LastUpdated.Format(dateLayout), e.AgeDays, e.Repository)
		if _, err := fmt.Fprintf(w, "::warning title=Outdated dependency::%s\n", escapeWorkflowData(msg)); err != nil {
			return err
		}
	}
	return nil
}

func escapeWorkflowData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

// JUnit XML types. Every outdated artifact becomes a failing test case.

type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	Cases     []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

func renderJUnit(w io.Writer, r Report) error {
	suite := junitTestSuite{
		Name:      "outdated",
		Tests:     r.Count,
		Failures:  r.Count,
		Timestamp: r.GeneratedAt.Format("2006-01-02T15:04:05Z"),
	}
	for _, e := range r.Outdated {
		suite.Cases = append(suite.Cases, junitTestCase{
			Name:      e.Artifact,
			Classname: "outdated." + e.Repository,
			Failure: &junitFailure{
				Message: fmt.Sprintf("not updated since %s", e.LastUpdated.Format(dateLayout)),
				Type:    "outdated",
				Body:    fmt.Sprintf("%s\nrepository: %s\nmetadata: %s\nage: %d days", e.PURL, e.RepositoryURL, e.MetadataURL, e.AgeDays),
			},
		})
	}

	root := junitTestSuites{
		Name:     "outdated",
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Suites:   []junitTestSuite{suite},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
