package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/config"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/database"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
	"github.com/n1ru4l/dsa-wiki-crawler/internal/verify"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Inspect the last mirror run or re-verify a corpus",
		Long: `Check prints the summary of the most recent mirror run from the run
history, without crawling anything. With --verify it additionally
re-checks link integrity of the mirrored corpus on disk.

Examples:
  # Show the last run's summary
  dsa-wiki-crawler check

  # Re-verify the corpus in ./wiki and show fresh results
  dsa-wiki-crawler check --verify --out wiki

  # List all recorded runs
  dsa-wiki-crawler check --history`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().String("host", config.DefaultBaseHost,
		"Wiki host the run history is queried for")
	cmd.Flags().String("namespace", config.DefaultNamespace,
		"Identifier prefix used in rewritten links")
	cmd.Flags().StringP("out", "o", config.DefaultOutputDir,
		"Corpus directory checked with --verify")
	cmd.Flags().Bool("verify", false,
		"Re-run the link integrity check on the corpus")
	cmd.Flags().Bool("history", false,
		"List all recorded runs instead of the latest summary")
	cmd.Flags().BoolP("json", "j", false,
		"Render the summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Render the summary as Markdown (mutually exclusive with --json)")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return err
	}
	namespace, err := cmd.Flags().GetString("namespace")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	reVerify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return err
	}
	history, err := cmd.Flags().GetBool("history")
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	cfg.BaseHost = host
	cfg.Namespace = namespace
	cfg.OutputDir = outputDir
	cfg.JSONReport, _ = cmd.Flags().GetBool("json")
	cfg.MarkdownReport, _ = cmd.Flags().GetBool("markdown")
	cfg.Verbose = getVerboseFlag(cmd)
	if cfg.JSONReport && cfg.MarkdownReport {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no run history found (run \"dsa-wiki-crawler mirror\" first): %w", err)
	}
	defer db.Close()

	if history {
		return printRunHistory(cmd, db, cfg.BaseURL())
	}

	latest, err := db.GetLatestRun(cmd.Context(), cfg.BaseURL())
	if err != nil {
		return err
	}
	if latest == nil {
		return fmt.Errorf("no runs recorded for %s", cfg.BaseURL())
	}

	if reVerify {
		checker := verify.NewChecker(cfg.Namespace, ident.NewNormalizer(cfg.BaseHost))
		result, err := checker.CheckDir(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("verify corpus: %w", err)
		}
		latest.OutputDir = cfg.OutputDir
		latest.DanglingLinks = append(result.Dangling, result.WikiURLs...)
	}

	if _, err := newReportWriter(cfg, cmd.OutOrStdout()).Write(latest); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// printRunHistory lists all recorded runs, newest first.
func printRunHistory(cmd *cobra.Command, db *database.MirrorDB, baseURL string) error {
	runs, err := db.ListRuns(cmd.Context(), baseURL)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("no runs recorded for %s", baseURL)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tELAPSED\tPAGES\tLINKS\tFAILURES\tDANGLING")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.ID,
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Elapsed.Round(time.Second),
			r.PagesWritten,
			r.LinksDiscovered,
			r.FailureCount,
			r.DanglingCount,
		)
	}
	return w.Flush()
}
