package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/internal/config"
	"github.com/pagesift/pagesift/pkg/analyzer"
	"github.com/pagesift/pagesift/pkg/crawler"
	"github.com/pagesift/pagesift/pkg/extractor"
	"github.com/pagesift/pagesift/pkg/fetcher"
	"github.com/pagesift/pagesift/pkg/htmldoc"
	"github.com/pagesift/pagesift/pkg/lexicon"
	"github.com/pagesift/pagesift/pkg/patterns"
	"github.com/pagesift/pagesift/pkg/reporter"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pagesift",
	Short: "PageSift - single-site crawler with structured and lexical extraction",
	Long: `PageSift crawls every reachable page of one website, extracts internal
links, image URLs, phone numbers, and zip codes, derives the site's cleaned
vocabulary and noun/verb frequencies, and writes a consolidated report.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [URL]",
	Short: "Crawl a site and write the extraction report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		cfg.Crawl.SeedURL = args[0]
		if v, _ := cmd.Flags().GetString("domain"); v != "" {
			cfg.Crawl.Domain = v
		}
		if v, _ := cmd.Flags().GetString("output"); v != "" {
			cfg.Report.OutputPath = v
		}
		if cmd.Flags().Changed("workers") {
			cfg.Crawl.Workers, _ = cmd.Flags().GetInt("workers")
		}
		if v, _ := cmd.Flags().GetString("content-mode"); v != "" {
			cfg.Crawl.ContentMode = v
		}
		if v, _ := cmd.Flags().GetString("lemmatizer"); v != "" {
			cfg.Analyzer.Lemmatizer = v
		}
		if ok, _ := cmd.Flags().GetBool("frequencies"); ok {
			cfg.Report.Frequencies = true
		}
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Finalize(); err != nil {
			return err
		}

		logger := newLogger(cfg.Logging.Level)

		pats := patterns.New()
		filter := lexicon.NewFilter(pats)
		lexical, err := analyzer.New(filter, analyzer.LemmaMode(cfg.Analyzer.Lemmatizer))
		if err != nil {
			return fmt.Errorf("init analyzer: %w", err)
		}
		fetch := fetcher.New(cfg.Fetch.Timeout, cfg.Fetch.Retries, cfg.Fetch.UserAgent, logger)
		extract := extractor.New(cfg.BaseURL, cfg.Crawl.Domain, pats)

		c := crawler.New(crawler.Options{
			SeedURL:     cfg.Crawl.SeedURL,
			Domain:      cfg.Crawl.Domain,
			Workers:     cfg.Crawl.Workers,
			ContentMode: htmldoc.Mode(cfg.Crawl.ContentMode),
		}, fetch, extract, lexical, logger)

		started := time.Now()
		logger.Info("starting crawl", "seed", cfg.Crawl.SeedURL, "domain", cfg.Crawl.Domain, "workers", cfg.Crawl.Workers)
		result, err := c.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("crawl failed: %w", err)
		}
		logger.Info("crawl complete",
			"pages", result.VisitedURLs.Len(),
			"failures", result.Failures,
			"elapsed", time.Since(started).Round(time.Millisecond))

		rep := reporter.New(cfg.Report.OutputPath)
		rep.IncludeFrequencies = cfg.Report.Frequencies
		if err := rep.Write(result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("report written", "path", cfg.Report.OutputPath)
		return nil
	},
}

func newLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
}

func init() {
	crawlCmd.Flags().String("domain", "", "Domain substring marking URLs as in-scope (default: derived from the seed URL)")
	crawlCmd.Flags().String("output", "", "Report file path (default: report.txt)")
	crawlCmd.Flags().Int("workers", 1, "Concurrent fetch workers")
	crawlCmd.Flags().String("content-mode", "", "Page text extraction: visible or article")
	crawlCmd.Flags().String("lemmatizer", "", "Base-form reducer: dictionary or stemmer")
	crawlCmd.Flags().Bool("frequencies", false, "Append noun/verb frequency sections to the report")

	rootCmd.AddCommand(crawlCmd)
	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
