package adscrape

import "context"

// Scraper fetches a listing page and extracts its ad.
type Scraper interface {
	// Scrape returns the ad at url, or nil when the page has no ad payload.
	// Fetch failures, including EBANNED, are returned as errors.
	Scrape(ctx context.Context, url string) (*AdInfo, error)
}
