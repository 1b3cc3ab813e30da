package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/config"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/convert"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/crawler"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/database"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/extract"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/fetch"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/log"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/model"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/pipeline"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/report"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/verify"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/writer"
)

// NewMirrorCmd creates the mirror command.
func NewMirrorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Crawl the wiki and write it as local markdown documents",
		Long: `Mirror crawls every page reachable from the wiki's entry points and
writes one markdown document per page. Inter-page links are rewritten
into stable local identifiers, a root index lists the entry points, and
the finished corpus is checked for dangling links.

Examples:
  # Mirror the rule wiki with defaults
  dsa-wiki-crawler mirror

  # Mirror into a custom directory with a slower crawl
  dsa-wiki-crawler mirror --out corpus --delay 2s

  # Write a markdown summary next to the corpus
  dsa-wiki-crawler mirror --markdown --report corpus/REPORT.md

  # Use a custom configuration file
  dsa-wiki-crawler mirror -c myconfig.yaml

Configuration file (.dsawiki) example:
  baseHost: ulisses-regelwiki.de
  entryPoints:
    - grundregeln.html
    - magie.html
  outputDir: wiki
  crawlDelayMs: 1000`,
		Args: cobra.NoArgs,
		RunE: runMirrorCmd,
	}

	// Crawl target flags
	cmd.Flags().String("host", config.DefaultBaseHost,
		"Wiki host to mirror, without scheme")
	cmd.Flags().StringSlice("entry", config.DefaultEntryPoints(),
		"Entry point pages as site-relative paths")
	cmd.Flags().String("namespace", config.DefaultNamespace,
		"Identifier prefix used in rewritten links")

	// Output flags
	cmd.Flags().StringP("out", "o", config.DefaultOutputDir,
		"Directory the document corpus is written to")
	cmd.Flags().String("index-id", config.DefaultIndexID,
		"Identifier of the synthetic root document")
	cmd.Flags().String("title-suffix", config.DefaultTitleSuffix,
		"Site-name suffix stripped from page titles")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().DurationP("delay", "d", config.DefaultCrawlDelay,
		"Politeness delay between page fetches")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to mirror in one run")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().Bool("skip-verify", false,
		"Skip the post-run link integrity check")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .dsawiki in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Render the run summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Render the run summary as Markdown (mutually exclusive with --json)")
	cmd.Flags().String("report", "",
		"Write the run summary to the specified file in addition to stdout")

	return cmd
}

// runMirrorCmd executes the mirror command.
func runMirrorCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runMirror(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the
// optional configuration file. Flags win over the file, the file wins
// over defaults; the file is therefore applied first, onto defaults,
// and explicitly changed flags overwrite it afterwards.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configFilePath

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.BaseHost, _ = flags.GetString("host")
	}
	if flags.Changed("entry") {
		cfg.EntryPoints, _ = flags.GetStringSlice("entry")
	}
	if flags.Changed("namespace") {
		cfg.Namespace, _ = flags.GetString("namespace")
	}
	if flags.Changed("out") {
		cfg.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("index-id") {
		cfg.IndexID, _ = flags.GetString("index-id")
	}
	if flags.Changed("title-suffix") {
		cfg.TitleSuffix, _ = flags.GetString("title-suffix")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("delay") {
		cfg.CrawlDelay, _ = flags.GetDuration("delay")
	}
	if flags.Changed("max-pages") {
		cfg.MaxPages, _ = flags.GetInt("max-pages")
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}

	cfg.SkipVerify, err = flags.GetBool("skip-verify")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport, err = flags.GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = flags.GetString("report")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runMirror wires the collaborators together and executes the run.
func runMirror(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting mirror",
		"wiki", cfg.BaseURL(),
		"entryPoints", len(cfg.EntryPoints),
		"outputDir", cfg.OutputDir,
	)

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Info("database opened", "dir", cfg.DBDir)

	norm := ident.NewNormalizer(cfg.BaseHost)
	fetcher := fetch.NewHTTPFetcher(
		&http.Client{Timeout: cfg.Timeout},
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)
	processor := crawler.NewProcessor(
		fetcher,
		convert.NewConverter(nil),
		extract.NewExtractor(norm),
		norm,
		cfg.Namespace,
		cfg.TitleSuffix,
	)
	scheduler := crawler.NewScheduler(
		processor,
		writer.NewFSWriter(cfg.OutputDir, cfg.Namespace, cfg.IndexID),
		norm,
		cfg.BaseURL(),
		cfg.EntryPoints,
		crawler.WithCrawlDelay(cfg.CrawlDelay),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithSchedulerLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewSeedStep(scheduler),
		pipeline.NewIndexStep(scheduler),
		pipeline.NewDrainStep(scheduler),
	)
	if !cfg.SkipVerify {
		p.AddStep(pipeline.NewVerifyStep(verify.NewChecker(cfg.Namespace, norm)))
	}
	p.AddStep(pipeline.NewPersistStep(db))

	mirrorReport := model.NewMirrorReport(cfg.BaseURL(), cfg.OutputDir)
	execErr := p.Execute(ctx, mirrorReport)
	if mirrorReport.Elapsed == 0 {
		mirrorReport.Elapsed = time.Since(mirrorReport.StartedAt)
	}

	if execErr != nil {
		return execErr
	}
	return outputReport(cfg, mirrorReport)
}

// outputReport renders the run summary to stdout and, when configured,
// to a file as well.
func outputReport(cfg *config.Config, mirrorReport *model.MirrorReport) error {
	writers := []report.Writer{newReportWriter(cfg, os.Stdout)}

	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-provided report path is intentional
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		writers = append(writers, newReportWriter(cfg, f))
	}

	if _, err := report.NewMultiWriter(writers...).Write(mirrorReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// newReportWriter selects the report format configured by the user.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
