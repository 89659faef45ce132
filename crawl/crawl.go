// Package crawl orchestrates scraping of listing pages. It composes a
// Fetcher and an Extractor into a Scraper and runs batches of URLs with
// deduplication, per-domain rate limiting, retries and bounded concurrency.
package crawl

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/adscrape"
	"github.com/fwojciec/adscrape/bloom"
	"golang.org/x/sync/errgroup"
)

// dedupeFalsePositiveRate keeps the chance of dropping a distinct input URL negligible.
const dedupeFalsePositiveRate = 1e-6

// Crawler scrapes batches of listing URLs.
type Crawler struct {
	Scraper     adscrape.Scraper
	Writers     []adscrape.AdWriter
	RateLimiter adscrape.DomainLimiter
	Concurrency int
	// RetryDelays defaults to DefaultRetryDelays when nil. An empty,
	// non-nil slice disables retries.
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Result holds the outcome of a batch scrape.
type Result struct {
	// Ads holds the ads found, in input order.
	Ads        []*adscrape.Ad
	Found      int
	Absent     int
	Failed     int
	Skipped    int
	Duplicates int
	Saved      int
}

// ProgressEvent reports progress during a batch scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressAbsent
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// scrapeResult holds the outcome of scraping a single URL.
type scrapeResult struct {
	position int
	url      string
	info     *adscrape.AdInfo
	err      error
	skipped  bool
}

// ScrapeAll scrapes every distinct URL and saves found ads through the Writers.
//
// An EBANNED failure stops the batch: in-flight scrapes are canceled, pending
// URLs are skipped, and the banned error is returned with the partial result.
func (c *Crawler) ScrapeAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	var result Result

	urls, result.Duplicates = dedupe(urls)

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	total := len(urls)
	resultCh := make(chan scrapeResult, total)
	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				r := c.scrapeURL(gctx, i, u)
				resultCh <- r
				if adscrape.IsBanned(r.err) {
					// Cancels gctx for the rest of the batch.
					return r.err
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]scrapeResult, total)
	var bannedErr error
	for r := range resultCh {
		results[r.position] = r

		if r.skipped {
			result.Skipped++
			continue
		}

		event := ProgressEvent{
			Completed: int(completed.Add(1)),
			Total:     total,
			URL:       r.url,
			Error:     r.err,
		}
		switch {
		case r.err != nil:
			result.Failed++
			event.Type = ProgressFailed
			if bannedErr == nil && adscrape.IsBanned(r.err) {
				bannedErr = r.err
			}
		case r.info == nil:
			result.Absent++
			event.Type = ProgressAbsent
		default:
			result.Found++
			event.Type = ProgressCompleted
		}
		if progress != nil {
			progress(event)
		}
	}

	// Save in input order so output is deterministic.
	for _, r := range results {
		if r.err != nil || r.info == nil {
			continue
		}

		ad := &adscrape.Ad{URL: r.url, AdInfo: *r.info}
		saved := true
		for _, w := range c.Writers {
			if err := w.SaveAd(ctx, ad); err != nil {
				saved = false
				if c.Logger != nil {
					c.Logger("  save %s: %v", r.url, err)
				}
			}
		}
		if len(c.Writers) > 0 {
			if saved {
				result.Saved++
			} else {
				result.Failed++
			}
		}
		result.Ads = append(result.Ads, ad)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: int(completed.Load()),
			Total:     total,
		})
	}

	if bannedErr != nil {
		return &result, bannedErr
	}
	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// scrapeURL rate limits and scrapes a single URL.
func (c *Crawler) scrapeURL(ctx context.Context, position int, rawURL string) scrapeResult {
	result := scrapeResult{
		position: position,
		url:      rawURL,
	}

	if err := ctx.Err(); err != nil {
		result.err = err
		result.skipped = true
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, hostOf(rawURL)); err != nil {
			result.err = err
			result.skipped = ctx.Err() != nil
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	result.info, result.err = ScrapeWithRetryDelays(ctx, rawURL, c.Scraper.Scrape, c.Logger, delays)
	if result.err != nil && !adscrape.IsBanned(result.err) && ctx.Err() != nil {
		// Interrupted by a ban elsewhere in the batch or by the caller.
		result.skipped = true
	}
	return result
}

// dedupe drops repeated URLs, compared in canonical form, and keeps first occurrences.
// It returns the distinct URLs and the number dropped.
func dedupe(urls []string) ([]string, int) {
	seen := bloom.NewFilter(uint(len(urls)), dedupeFalsePositiveRate)

	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.Seen(u) {
			continue
		}
		out = append(out, u)
	}
	return out, len(urls) - len(out)
}

// hostOf returns the host of rawURL, or an empty string if it cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
