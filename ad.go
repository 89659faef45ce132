package adscrape

import (
	"context"
	"time"
)

// Well-known attribute keys populated from the page payload alongside the
// site's own machine keys.
const (
	AttrPrice    = "price"
	AttrLocation = "location"
	AttrType     = "type"
	AttrVisits   = "visits"
)

// AdInfo is the normalized content of a single ad listing.
type AdInfo struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Image       string           `json:"image"`
	Images      []string         `json:"images"`
	Attributes  map[string]Value `json:"attributes"`
}

// NewAdInfo returns an empty AdInfo with non-nil collections.
func NewAdInfo() *AdInfo {
	return &AdInfo{
		Images:     []string{},
		Attributes: make(map[string]Value),
	}
}

// Ad is a scraped ad as persisted by an AdService.
type Ad struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	ContentHash string    `json:"contentHash"`
	ScrapedAt   time.Time `json:"scrapedAt"`
	AdInfo
}

// Validate returns an error if the ad contains invalid fields.
func (a *Ad) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "ad URL required")
	}
	return nil
}

// AdWriter writes scraped ads to storage.
type AdWriter interface {
	SaveAd(ctx context.Context, ad *Ad) error
}

// AdService represents a service for managing scraped ads.
type AdService interface {
	// SaveAd creates the ad or replaces the stored ad with the same URL.
	// ID, ContentHash and ScrapedAt are set on the passed ad.
	SaveAd(ctx context.Context, ad *Ad) error

	// FindAdByURL retrieves an ad by its listing URL.
	// Returns ENOTFOUND if the ad does not exist.
	FindAdByURL(ctx context.Context, url string) (*Ad, error)

	// FindAds retrieves ads matching the filter, most recently scraped first.
	FindAds(ctx context.Context, filter AdFilter) ([]*Ad, error)

	// DeleteAd permanently removes an ad.
	// Returns ENOTFOUND if the ad does not exist.
	DeleteAd(ctx context.Context, id string) error
}

// AdFilter represents a filter for FindAds.
type AdFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
