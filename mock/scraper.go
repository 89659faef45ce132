package mock

import (
	"context"

	"github.com/fwojciec/adscrape"
)

var _ adscrape.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of adscrape.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*adscrape.AdInfo, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*adscrape.AdInfo, error) {
	return s.ScrapeFn(ctx, url)
}
