package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/adscrape"
	"github.com/fwojciec/adscrape/crawl"
	"github.com/fwojciec/adscrape/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Ads     adscrape.AdService
	Crawler *crawl.Crawler
	Metrics *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape ad listings and print them as JSON"`
	List   ListCmd   `cmd:"" help:"List saved ads"`
	Show   ShowCmd   `cmd:"" help:"Show a saved ad"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved ad"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Listing URLs to scrape"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent fetch limit"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per domain"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Per-request timeout"`
	Retries     int           `default:"3" help:"Retries per URL for transient failures"`
	Save        bool          `help:"Save found ads to the database"`
	Out         string        `short:"o" type:"path" help:"Also write each ad as JSON into this directory"`
	Markdown    bool          `help:"Render descriptions as Markdown instead of plain text"`
	Verbose     bool          `short:"v" help:"Log requests to stderr"`
	Metrics     string        `type:"path" help:"Write Prometheus metrics to this file when done"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `short:"n" default:"20" help:"Maximum number of ads to list (0 for all)"`
	Offset int `help:"Number of ads to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL string `arg:"" help:"Listing URL"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Listing URL"`
	Force bool   `help:"Confirm deletion"`
}
