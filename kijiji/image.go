// Package kijiji holds the site-specific rules for Kijiji listing assets.
package kijiji

import (
	"regexp"

	"github.com/fwojciec/adscrape"
)

var _ adscrape.ImageResolver = (*ImageResolver)(nil)

var (
	// Legacy image URLs end in "/$_NN.JPG" where NN selects size and quality.
	// 57 is the largest (up to 1024x1024).
	legacySizePattern = regexp.MustCompile(`/\$_\d+\.(?:JPG|PNG)$`)
	// Current image URLs carry a "rule=kijijica-NNN-" resize directive.
	ruleSizePattern = regexp.MustCompile(`([?&])rule=kijijica-\d+-`)
)

const (
	legacyLargeSuffix = "/$$_57.JPG"
	ruleLargeSize     = "${1}rule=kijijica-1600-"
)

// ImageResolver rewrites Kijiji image URLs to their largest variant.
// URLs that match neither known form are returned unchanged.
type ImageResolver struct{}

// NewImageResolver creates a new ImageResolver.
func NewImageResolver() *ImageResolver {
	return &ImageResolver{}
}

// LargeImageURL returns the URL of the largest variant of the image at url.
func (r *ImageResolver) LargeImageURL(url string) string {
	if url == "" {
		return ""
	}
	url = legacySizePattern.ReplaceAllString(url, legacyLargeSuffix)
	return ruleSizePattern.ReplaceAllString(url, ruleLargeSize)
}
