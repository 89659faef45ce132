package crawl

import (
	"context"

	"github.com/fwojciec/adscrape"
)

// Ensure Scraper implements adscrape.Scraper at compile time.
var _ adscrape.Scraper = (*Scraper)(nil)

// Scraper fetches a listing page and hands the HTML to an Extractor.
// It holds no per-call state and is safe for concurrent use when its
// collaborators are.
type Scraper struct {
	fetcher   adscrape.Fetcher
	extractor adscrape.Extractor
}

// NewScraper creates a new Scraper.
func NewScraper(fetcher adscrape.Fetcher, extractor adscrape.Extractor) *Scraper {
	return &Scraper{fetcher: fetcher, extractor: extractor}
}

// Scrape returns the ad at url, or nil if the page carries no ad payload.
// Fetch errors are returned unchanged so EBANNED stays distinguishable;
// the extractor is not called when the fetch fails.
func (s *Scraper) Scrape(ctx context.Context, url string) (*adscrape.AdInfo, error) {
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	info, ok := s.extractor.Extract(html)
	if !ok {
		return nil, nil
	}
	return info, nil
}
