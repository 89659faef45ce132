package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/adscrape"
)

// ScrapeFunc is the signature for a scrape function.
type ScrapeFunc func(ctx context.Context, url string) (*adscrape.AdInfo, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for scrape retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryDelays returns n backoff delays doubling from 1s.
// Zero or a negative n disables retries.
func RetryDelays(n int) []time.Duration {
	delays := []time.Duration{}
	d := time.Second
	for range max(n, 0) {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// ScrapeWithRetry attempts to scrape a URL with exponential backoff retry logic.
// It retries up to 3 times (4 total attempts) with delays of 1s, 2s, 4s.
// The logger function, if provided, is called for each retry attempt.
func ScrapeWithRetry(ctx context.Context, url string, scrape ScrapeFunc, logger LogFunc) (*adscrape.AdInfo, error) {
	return ScrapeWithRetryDelays(ctx, url, scrape, logger, DefaultRetryDelays())
}

// ScrapeWithRetryDelays is like ScrapeWithRetry but allows configurable delays.
// EBANNED errors are returned immediately: retrying a blocked client only
// prolongs the block.
func ScrapeWithRetryDelays(ctx context.Context, url string, scrape ScrapeFunc, logger LogFunc, delays []time.Duration) (*adscrape.AdInfo, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		info, err := scrape(ctx, url)
		if err == nil {
			return info, nil
		}
		if adscrape.IsBanned(err) {
			return nil, err
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
