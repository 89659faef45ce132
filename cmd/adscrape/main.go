package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/adscrape"
	"github.com/fwojciec/adscrape/crawl"
	"github.com/fwojciec/adscrape/fs"
	"github.com/fwojciec/adscrape/goquery"
	"github.com/fwojciec/adscrape/htmltomarkdown"
	adshttp "github.com/fwojciec/adscrape/http"
	"github.com/fwojciec/adscrape/kijiji"
	"github.com/fwojciec/adscrape/prometheus"
	adslog "github.com/fwojciec/adscrape/slog"
	"github.com/fwojciec/adscrape/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Optional YAML file supplying flag defaults. Missing files are ignored.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	AdService adscrape.AdService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("adscrape"),
		kong.Description("Scrape Kijiji ad listings into structured records."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(YAMLResolver, m.ConfigPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'adscrape --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The database is only opened for commands that use it.
	if cmd != "scrape" || cli.Scrape.Save {
		if err := m.openAdService(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Ads = m.AdService
	}

	if cmd == "scrape" {
		fetcher := adshttp.NewFetcher(adshttp.WithClient(&http.Client{Timeout: cli.Scrape.Timeout}))
		defer fetcher.Close()

		deps.Metrics = prometheus.NewMetrics()
		deps.Crawler = m.newCrawler(&cli.Scrape, fetcher, deps.Metrics, stderr)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openAdService(stderr io.Writer) error {
	if m.AdService != nil {
		return nil
	}

	if dir := filepath.Dir(m.DBPath); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ADSCRAPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.AdService = sqlite.NewAdService(m.DB)
	return nil
}

// newCrawler wires the scrape pipeline from the command flags.
func (m *Main) newCrawler(c *ScrapeCmd, fetcher adscrape.Fetcher, metrics *prometheus.Metrics, stderr io.Writer) *crawl.Crawler {
	logger := slog.New(slog.DiscardHandler)
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var cleaner adscrape.DescriptionCleaner = goquery.NewDescriptionCleaner()
	if c.Markdown {
		cleaner = htmltomarkdown.NewDescriptionCleaner()
	}

	extractor := goquery.NewExtractor(cleaner, kijiji.NewImageResolver())
	scraper := crawl.NewScraper(
		adslog.NewLoggingFetcher(fetcher, logger),
		adslog.NewLoggingExtractor(extractor, logger),
	)

	crawler := &crawl.Crawler{
		Scraper:     prometheus.NewScraper(adslog.NewLoggingScraper(scraper, logger), metrics),
		RateLimiter: crawl.NewDomainLimiter(c.RPS),
		Concurrency: c.Concurrency,
		RetryDelays: crawl.RetryDelays(c.Retries),
	}
	if c.Verbose {
		crawler.Logger = func(format string, args ...any) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}
	}
	if c.Save {
		crawler.Writers = append(crawler.Writers, m.AdService)
	}
	if c.Out != "" {
		crawler.Writers = append(crawler.Writers, fs.NewWriter(c.Out))
	}
	return crawler
}

func defaultDBPath() string {
	if path := os.Getenv("ADSCRAPE_DB"); path != "" {
		return path
	}
	return filepath.Join(homeDir(), "adscrape.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("ADSCRAPE_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(homeDir(), "config.yaml")
}

// homeDir returns ~/.adscrape, or the working directory if there is no home.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".adscrape")
}
