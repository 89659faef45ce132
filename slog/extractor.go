package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/adscrape"
)

// Ensure LoggingExtractor implements adscrape.Extractor.
var _ adscrape.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   adscrape.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next adscrape.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs whether an ad was found.
func (e *LoggingExtractor) Extract(html string) (info *adscrape.AdInfo, ok bool) {
	defer func(begin time.Time) {
		attrs := []any{
			"found", ok,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if ok {
			attrs = append(attrs, "images", len(info.Images), "attributes", len(info.Attributes))
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}
