package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/outdated/fetch"
	"github.com/git-pkgs/outdated/internal/config"
	"github.com/git-pkgs/outdated/internal/core"
	"github.com/git-pkgs/outdated/internal/logger"
	"github.com/git-pkgs/outdated/internal/maven"
	"github.com/git-pkgs/outdated/internal/report"
)

func newCheckCommand() *cobra.Command {
	var (
		configPath string
		repos      []string
		in         inputs
	)

	cmd := &cobra.Command{
		Use:   "check [artifact...]",
		Short: "Report dependencies whose latest publish is older than the threshold",
		Long: `Check looks up every artifact in the configured repositories, in order,
and reports the ones last updated more than --threshold-years ago.

Artifacts may be given as group:artifact, group:artifact:version,
pkg:maven/group/artifact or a Leiningen group/artifact name, or read from
--pom, --catalog and --file inputs. Artifacts that no repository knows are
skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.args = args
			return runCheck(cmd, configPath, repos, in)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Config file (default .outdated.yaml in . or $HOME)")
	flags.StringSliceVar(&repos, "repo", nil, "Repository id, id=url or url; repeatable, searched in order (default central)")
	flags.StringSliceVar(&in.poms, "pom", nil, "Read dependencies from a pom.xml")
	flags.StringSliceVar(&in.catalogs, "catalog", nil, "Read libraries from a Gradle version catalog (libs.versions.toml)")
	flags.StringSliceVar(&in.lists, "file", nil, "Read artifacts from a file, one per line")
	flags.BoolVar(&in.includeManaged, "include-managed", false, "Also check pom dependencyManagement entries")

	flags.Int("threshold-years", 1, "Report artifacts not updated for more than this many years")
	flags.Int("concurrency", 8, "Number of artifacts fetched in parallel")
	flags.Duration("timeout", 0, "HTTP timeout per request (default 30s)")
	flags.Int("max-retries", 3, "Retries for rate limited or unavailable repositories")
	flags.String("user-agent", "", "User-Agent sent to repositories")
	flags.String("format", "", "Output format: "+formatNames()+" (default text, github under GitHub Actions)")
	flags.StringSlice("ignore", nil, "Glob of group:artifact to skip; repeatable")
	flags.Bool("fail-on-outdated", false, "Exit with status 1 when outdated artifacts are found")

	return cmd
}

func formatNames() string {
	names := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

func runCheck(cmd *cobra.Command, configPath string, repoFlags []string, in inputs) error {
	log := logger.Default()

	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return usageError(err)
	}
	if !cfg.FormatSet {
		cfg.Format = string(report.DefaultFormat())
	}
	if len(repoFlags) > 0 {
		cfg.Repositories = cfg.Repositories[:0]
		for _, ref := range repoFlags {
			cfg.Repositories = append(cfg.Repositories, config.ParseRepository(ref))
		}
	}
	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}
	if cfg.Source != "" {
		log.Debug("Loaded config", logger.String("path", cfg.Source))
	}

	repositories, err := core.ResolveRepositories(cfg.RepositoryRefs())
	if err != nil {
		return usageError(err)
	}

	in.args = append(append([]string(nil), cfg.Artifacts...), in.args...)
	artifacts, err := in.collect()
	if err != nil {
		return usageError(err)
	}
	if len(artifacts) == 0 {
		return usageError(errors.New("no artifacts to check: pass coordinates or use --pom, --catalog or --file"))
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return usageError(err)
	}
	writer, err := report.New(format, cmd.OutOrStdout(), report.WithThreshold(cfg.ThresholdYears))
	if err != nil {
		return usageError(err)
	}
	recorder := report.NewRecorder(writer)

	fetcherOpts := []fetch.Option{fetch.WithMaxRetries(cfg.MaxRetries)}
	if cfg.Timeout > 0 {
		fetcherOpts = append(fetcherOpts, fetch.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, fetch.WithUserAgent(cfg.UserAgent))
	}
	fetcherOpts = append(fetcherOpts, fetch.WithHeader("Accept", maven.MetadataAccept))
	breakers := fetch.NewCircuitBreakerFetcher(fetch.NewFetcher(fetcherOpts...), 0)
	port := maven.NewPort(breakers, log)

	var missing []string
	checker := core.NewChecker(port, recorder, maven.ExtractLastUpdated,
		core.WithConcurrency(cfg.Concurrency),
		core.WithIgnore(cfg.Ignore...),
		core.WithNotFoundHandler(func(n core.NotFound) {
			missing = append(missing, n.Candidate.Artifact.String())
		}),
		core.WithLogger(log),
	)

	log.Info("Checking artifacts",
		logger.Int("artifacts", len(artifacts)),
		logger.Int("repositories", len(repositories)),
		logger.Int("threshold_years", cfg.ThresholdYears))

	if err := checker.VerifyArtifacts(cmd.Context(), artifacts, repositories, cfg.ThresholdYears); err != nil {
		return failure(err)
	}

	for host, state := range breakers.BreakerStates() {
		if state == "open" {
			log.Warn("Repository host stopped responding; its artifacts were skipped", logger.String("host", host))
		}
	}
	if len(missing) > 0 {
		log.Debug("Artifacts not found in any repository",
			logger.Int("count", len(missing)),
			logger.String("artifacts", strings.Join(missing, ", ")))
	}

	if recorder.Calls() == 0 {
		if format == report.FormatText {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No outdated dependencies found.")
		}
		return nil
	}
	if cfg.FailOnOutdated {
		return &ExitError{Code: ExitOutdated}
	}
	return nil
}
