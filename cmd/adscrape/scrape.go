package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/adscrape"
	"github.com/fwojciec/adscrape/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if deps.Crawler == nil {
		return adscrape.Errorf(adscrape.EINTERNAL, "scrape pipeline not configured")
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressAbsent:
			fmt.Fprintf(deps.Stderr, "  no ad data %s\n", crawl.TruncateURL(event.URL, 80))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 80), event.Error)
		}
	}

	result, err := deps.Crawler.ScrapeAll(deps.Ctx, c.URLs, progress)

	if c.Metrics != "" && deps.Metrics != nil {
		if mErr := deps.Metrics.WriteFile(c.Metrics); mErr != nil {
			fmt.Fprintf(deps.Stderr, "error writing metrics: %v\n", mErr)
		}
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	for _, ad := range result.Ads {
		if encErr := enc.Encode(ad); encErr != nil {
			return encErr
		}
	}

	fmt.Fprintf(deps.Stderr, "  %s\n", crawl.FormatSummary(result))

	if err != nil {
		if adscrape.IsBanned(err) {
			fmt.Fprintf(deps.Stderr, "error: %s\n", adscrape.ErrorMessage(err))
			fmt.Fprintln(deps.Stderr, "Hint: The site is refusing requests. Wait before retrying or lower --rps")
			return err
		}
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	return nil
}
