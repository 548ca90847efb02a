package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sitemd/sitemd"
	"github.com/sitemd/sitemd/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   sitemd.Fetcher
	Extractor sitemd.Extractor
	Converter sitemd.Converter
	Links     sitemd.LinkDiscoverer
	Robots    sitemd.RobotsGate
	Sitemaps  sitemd.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL       string        `arg:"" help:"Seed URL to crawl"`
	MaxPages  int           `short:"n" default:"50" help:"Maximum number of pages to fetch (capped at 200)"`
	Single    bool          `short:"s" help:"Fetch only the seed page, ignoring links"`
	Exclude   []string      `short:"x" help:"Skip URLs whose path matches the pattern (repeatable, glob or substring)"`
	Format    string        `enum:"markdown,json" default:"markdown" help:"Export format"`
	Delay     time.Duration `default:"300ms" help:"Politeness delay between requests"`
	NoRobots  bool          `help:"Ignore robots.txt"`
	Sitemap   bool          `help:"Seed additional URLs from the site's sitemap"`
	Extractor string        `enum:"heuristic,readability,trafilatura" default:"heuristic" help:"Content extraction strategy"`
	Output    string        `short:"o" type:"path" help:"Write the export to a file instead of stdout"`
	Verbose   bool          `short:"v" help:"Log crawl activity to stderr"`
}

// Run executes the crawl and writes the export.
func (c *CLI) Run(deps *Dependencies) error {
	req := &sitemd.CrawlRequest{
		SeedURL:         c.URL,
		MaxPages:        c.MaxPages,
		ExcludePatterns: c.Exclude,
		Format:          sitemd.OutputFormat(c.Format),
		SinglePage:      c.Single,
		Delay:           c.Delay,
		RespectRobots:   !c.NoRobots,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid URL %q: %s", c.URL, sitemd.ErrorMessage(err))
	}
	// Clamp the page limit and delay before anything derives from them;
	// the limiter below paces requests with the clamped delay.
	req.Normalize()

	if c.Sitemap && !c.Single {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: sitemap discovery failed: %s\n", sitemd.ErrorMessage(err))
		} else {
			req.ExtraSeeds = urls
		}
	}

	controller := &crawl.Controller{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Converter: deps.Converter,
		Links:     deps.Links,
		Robots:    deps.Robots,
		Limiter:   crawl.NewDomainLimiter(req.Delay),
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Status {
		case sitemd.PageFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.URL, event.Error)
		case sitemd.PageSkippedRobots, sitemd.PageSkippedExcluded:
			if c.Verbose {
				fmt.Fprintf(deps.Stderr, "  skip %s\n", event.URL)
			}
		}
	}

	result, runErr := controller.Run(deps.Ctx, req, progress)
	if result == nil {
		return runErr
	}

	if err := c.export(deps, result); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Crawled %d pages: %d ok, %d skipped, %d failed, %d duplicates\n",
		result.Summary.Attempted, result.Summary.Succeeded, result.Summary.Skipped,
		result.Summary.Failed, result.Summary.Duplicates)

	if runErr != nil {
		return fmt.Errorf("crawl aborted after %d pages: %w", result.Summary.Attempted, runErr)
	}
	return nil
}

func (c *CLI) export(deps *Dependencies, result *sitemd.CrawlResult) error {
	var out []byte
	if sitemd.OutputFormat(c.Format) == sitemd.FormatJSON {
		doc, err := sitemd.JSONDocument(result)
		if err != nil {
			return err
		}
		out = append(doc, '\n')
	} else {
		out = []byte(sitemd.MarkdownDocument(result))
	}

	if c.Output != "" {
		return os.WriteFile(c.Output, out, 0o644)
	}
	_, err := deps.Stdout.Write(out)
	return err
}
