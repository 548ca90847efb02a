package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sitemd/sitemd"
	"github.com/sitemd/sitemd/goquery"
	"github.com/sitemd/sitemd/htmltomarkdown"
	sitemdhttp "github.com/sitemd/sitemd/http"
	"github.com/sitemd/sitemd/readability"
	"github.com/sitemd/sitemd/robotstxt"
	sitemdslog "github.com/sitemd/sitemd/slog"
	"github.com/sitemd/sitemd/trafilatura"
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
	// Services overridable for end-to-end testing. Nil fields are
	// wired with the real implementations in Run.
	Fetcher  sitemd.Fetcher
	Robots   sitemd.RobotsGate
	Sitemaps sitemd.SitemapService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitemd"),
		kong.Description("Crawl a website and export its content as Markdown or JSON."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		if len(args) == 0 {
			return fmt.Errorf("no URL specified. Run 'sitemd --help' for usage")
		}
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Fetcher:   m.Fetcher,
		Robots:    m.Robots,
		Sitemaps:  m.Sitemaps,
		Extractor: newExtractor(cli.Extractor),
		Converter: htmltomarkdown.NewConverter(),
		Links:     goquery.NewDiscoverer(),
	}

	if deps.Fetcher == nil {
		deps.Fetcher = sitemdhttp.NewFetcher()
	}
	if deps.Robots == nil {
		deps.Robots = robotstxt.NewGate(robotstxt.WithUserAgent(sitemdhttp.DefaultUserAgent))
	}
	if deps.Sitemaps == nil {
		deps.Sitemaps = sitemdhttp.NewSitemapService(nil)
	}
	defer deps.Fetcher.Close()

	if cli.Verbose {
		deps.Fetcher = sitemdslog.NewLoggingFetcher(deps.Fetcher, logger)
		deps.Robots = sitemdslog.NewLoggingRobotsGate(deps.Robots, logger)
		deps.Sitemaps = sitemdslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	return kongCtx.Run(deps)
}

func newExtractor(name string) sitemd.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}
