package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/adscrape"
)

// Ensure LoggingScraper implements adscrape.Scraper.
var _ adscrape.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   adscrape.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next adscrape.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, url string) (info *adscrape.AdInfo, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"found", info != nil,
			"duration", time.Since(begin),
		}
		if info != nil {
			attrs = append(attrs, "title", info.Title)
		}
		if err != nil {
			attrs = append(attrs, "code", adscrape.ErrorCode(err), "err", err)
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, url)
}
