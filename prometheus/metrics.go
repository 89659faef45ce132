// Package prometheus records scrape metrics with the Prometheus client.
package prometheus

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/adscrape"
	"github.com/prometheus/client_golang/prometheus"
)

// Scrape outcomes used as the "outcome" label value.
const (
	OutcomeFound    = "found"
	OutcomeAbsent   = "absent"
	OutcomeBanned   = "banned"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Metrics holds scrape collectors on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	scrapes  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	images   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		scrapes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adscrape_scrapes_total",
				Help: "Scrape attempts by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adscrape_scrape_duration_seconds",
				Help:    "Duration of scrape attempts.",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		images: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "adscrape_ad_images",
				Help:    "Number of gallery images per found ad.",
				Buckets: []float64{0, 1, 2, 5, 10, 20},
			},
		),
	}
	m.Registry.MustRegister(m.scrapes, m.duration, m.images)
	return m
}

// WriteFile writes the current metrics to path in the text exposition
// format, for collection by node_exporter's textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

func (m *Metrics) observe(info *adscrape.AdInfo, err error, d time.Duration) {
	outcome := outcomeOf(info, err)
	m.scrapes.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
	if info != nil {
		m.images.Observe(float64(len(info.Images)))
	}
}

func outcomeOf(info *adscrape.AdInfo, err error) string {
	switch {
	case adscrape.IsBanned(err):
		return OutcomeBanned
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case err != nil:
		return OutcomeError
	case info == nil:
		return OutcomeAbsent
	default:
		return OutcomeFound
	}
}

// Ensure Scraper implements adscrape.Scraper.
var _ adscrape.Scraper = (*Scraper)(nil)

// Scraper wraps a Scraper and records every attempt in Metrics.
type Scraper struct {
	next    adscrape.Scraper
	metrics *Metrics
}

// NewScraper creates a new Scraper.
func NewScraper(next adscrape.Scraper, metrics *Metrics) *Scraper {
	return &Scraper{next: next, metrics: metrics}
}

// Scrape delegates to the wrapped scraper and records the outcome.
func (s *Scraper) Scrape(ctx context.Context, url string) (info *adscrape.AdInfo, err error) {
	defer func(begin time.Time) {
		s.metrics.observe(info, err, time.Since(begin))
	}(time.Now())
	return s.next.Scrape(ctx, url)
}
