package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, c.ThresholdYears)
	assert.Equal(t, 8, c.Concurrency)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, 3, c.MaxRetries)
	assert.Equal(t, "text", c.Format)
	assert.Equal(t, []Repository{{ID: "central"}}, c.Repositories)
	assert.Empty(t, c.Artifacts)
	assert.False(t, c.FailOnOutdated)
	assert.Empty(t, c.Source)
	assert.False(t, c.FormatSet)
	assert.NoError(t, c.Validate())
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "outdated.yaml", `
threshold_years: 3
concurrency: 2
timeout: 5s
format: json
fail_on_outdated: true
repositories:
  - id: google
  - id: internal
    url: https://nexus.example.com/repository/maven-public/
artifacts:
  - org.apache.maven:maven-core
  - pkg:maven/junit/junit
ignore:
  - "com.example.*:*"
`)

	c, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, c.ThresholdYears)
	assert.Equal(t, 2, c.Concurrency)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, "json", c.Format)
	assert.True(t, c.FailOnOutdated)
	assert.Equal(t, []string{"org.apache.maven:maven-core", "pkg:maven/junit/junit"}, c.Artifacts)
	assert.Equal(t, []string{"com.example.*:*"}, c.Ignore)
	assert.Equal(t, path, c.Source)
	assert.Equal(t, []string{"google", "internal=https://nexus.example.com/repository/maven-public/"}, c.RepositoryRefs())
	assert.NoError(t, c.Validate())
}

func TestLoadTOMLFile(t *testing.T) {
	path := writeFile(t, "outdated.toml", `
threshold_years = 2
format = "junit"
`)
	c, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ThresholdYears)
	assert.Equal(t, "junit", c.Format)
}

func TestLoadDiscoversDotFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".outdated.yaml"), []byte("threshold_years: 4\n"), 0o644))
	t.Chdir(dir)

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, c.ThresholdYears)
	assert.NotEmpty(t, c.Source)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OUTDATED_THRESHOLD_YEARS", "7")
	t.Setenv("OUTDATED_FORMAT", "yaml")

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, c.ThresholdYears)
	assert.Equal(t, "yaml", c.Format)
	assert.True(t, c.FormatSet)
}

func TestLoadFormatSetFromEnvDefaultValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OUTDATED_FORMAT", "text")

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "text", c.Format)
	assert.True(t, c.FormatSet, "an explicit value equal to the default still counts as set")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.ThresholdYears = -1 }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"unknown format", func(c *Config) { c.Format = "html" }},
		{"no repositories", func(c *Config) { c.Repositories = nil }},
		{"empty repository", func(c *Config) { c.Repositories = []Repository{{}} }},
		{"non-http url", func(c *Config) { c.Repositories = []Repository{{ID: "x", URL: "ftp://x"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestRepositoryRef(t *testing.T) {
	assert.Equal(t, "central", Repository{ID: "central"}.Ref())
	assert.Equal(t, "https://x.example.com/", Repository{URL: "https://x.example.com/"}.Ref())
	assert.Equal(t, "x=https://x.example.com/", Repository{ID: "x", URL: "https://x.example.com/"}.Ref())
}

func TestLoadFlagsOverride(t *testing.T) {
	path := writeFile(t, "outdated.yaml", "threshold_years: 3\nconcurrency: 2\n")

	flags := pflag.NewFlagSet("check", pflag.ContinueOnError)
	flags.Int("threshold-years", 1, "")
	flags.Int("concurrency", 8, "")
	flags.StringSlice("ignore", nil, "")
	flags.Bool("fail-on-outdated", false, "")
	require.NoError(t, flags.Parse([]string{"--threshold-years", "5", "--ignore", "a:*,b:*", "--fail-on-outdated"}))

	c, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 5, c.ThresholdYears, "changed flag wins over file")
	assert.Equal(t, 2, c.Concurrency, "unchanged flag does not override file")
	assert.Equal(t, []string{"a:*", "b:*"}, c.Ignore)
	assert.True(t, c.FailOnOutdated)
}

func TestParseRepository(t *testing.T) {
	assert.Equal(t, Repository{ID: "google"}, ParseRepository("google"))
	assert.Equal(t, Repository{ID: "n", URL: "https://n.example.com/"}, ParseRepository(" n = https://n.example.com/ "))
	assert.Equal(t, Repository{URL: "https://n.example.com/"}, ParseRepository("https://n.example.com/"))
}
