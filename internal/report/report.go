// Package report renders outdated artifacts in the formats the CLI supports.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/git-pkgs/outdated/internal/core"
	"github.com/git-pkgs/outdated/internal/maven"
)

// Format names an output format.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatGitHub Format = "github"
	FormatJUnit  Format = "junit"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatGitHub, FormatJUnit}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Entry is one outdated artifact as it appears in a report.
type Entry struct {
	Artifact      string    `json:"artifact" yaml:"artifact"`
	GroupID       string    `json:"group_id" yaml:"group_id"`
	ArtifactID    string    `json:"artifact_id" yaml:"artifact_id"`
	Repository    string    `json:"repository" yaml:"repository"`
	RepositoryURL string    `json:"repository_url" yaml:"repository_url"`
	LastUpdated   time.Time `json:"last_updated" yaml:"last_updated"`
	AgeDays       int       `json:"age_days" yaml:"age_days"`
	MetadataURL   string    `json:"metadata_url,omitempty" yaml:"metadata_url,omitempty"`
	BrowseURL     string    `json:"browse_url,omitempty" yaml:"browse_url,omitempty"`
	PURL          string    `json:"purl" yaml:"purl"`
}

// Report is the document rendered by the structured formats.
type Report struct {
	GeneratedAt    time.Time `json:"generated_at" yaml:"generated_at"`
	ThresholdYears int       `json:"threshold_years" yaml:"threshold_years"`
	Count          int       `json:"count" yaml:"count"`
	Outdated       []Entry   `json:"outdated" yaml:"outdated"`
}

type renderFunc func(w io.Writer, r Report) error

var renderers = map[Format]renderFunc{
	FormatText:   renderText,
	FormatJSON:   renderJSON,
	FormatYAML:   renderYAML,
	FormatGitHub: renderGitHub,
	FormatJUnit:  renderJUnit,
}

// Writer is an output port that renders outdated artifacts to an io.Writer.
type Writer struct {
	out            io.Writer
	render         renderFunc
	clock          core.Clock
	thresholdYears int
	layout         func(baseURL string) core.URLBuilder
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock sets the clock used for ages and the report timestamp.
func WithClock(c core.Clock) Option {
	return func(w *Writer) {
		w.clock = c
	}
}

// WithThreshold records the threshold the run used.
func WithThreshold(years int) Option {
	return func(w *Writer) {
		w.thresholdYears = years
	}
}

// WithLayout sets how metadata URLs are derived from repository base URLs.
func WithLayout(layout func(baseURL string) core.URLBuilder) Option {
	return func(w *Writer) {
		w.layout = layout
	}
}

// New creates a report writer for format.
func New(format Format, out io.Writer, opts ...Option) (*Writer, error) {
	render, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	w := &Writer{
		out:    out,
		render: render,
		clock:  core.SystemClock{},
		layout: maven.NewURLs,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Output renders outdated in the configured format.
func (w *Writer) Output(_ context.Context, outdated []core.LatestRemoteArtifact) error {
	if err := w.render(w.out, w.Build(outdated)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Build converts outdated artifacts into a Report.
func (w *Writer) Build(outdated []core.LatestRemoteArtifact) Report {
	now := w.clock.Now().UTC()
	r := Report{
		GeneratedAt:    now,
		ThresholdYears: w.thresholdYears,
		Count:          len(outdated),
		Outdated:       make([]Entry, 0, len(outdated)),
	}
	for _, l := range outdated {
		e := Entry{
			Artifact:      l.Artifact.String(),
			GroupID:       l.Artifact.GroupID,
			ArtifactID:    l.Artifact.ArtifactID,
			Repository:    l.Repository.ID,
			RepositoryURL: l.Repository.NormalizedURL(),
			LastUpdated:   l.LastUpdated,
			AgeDays:       int(l.Age(now).Hours() / 24),
			PURL:          core.PURL(l.Artifact),
		}
		if w.layout != nil {
			urls := w.layout(l.Repository.NormalizedURL())
			e.MetadataURL = urls.Metadata(l.Artifact.GroupID, l.Artifact.ArtifactID)
			e.BrowseURL = urls.Browse(l.Artifact.GroupID, l.Artifact.ArtifactID)
		}
		r.Outdated = append(r.Outdated, e)
	}
	return r
}
