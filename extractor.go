package adscrape

// Extractor extracts ad information from listing page HTML.
type Extractor interface {
	// Extract returns the ad described by the page.
	// The bool result is false when the page carries no recognizable ad payload;
	// that is an expected outcome for expired or restructured pages, not an error.
	Extract(html string) (*AdInfo, bool)
}

// DescriptionCleaner turns the HTML of an ad description into plain text.
type DescriptionCleaner interface {
	CleanDescription(html string) string
}

// ImageResolver maps an image URL to the URL of its largest available variant.
type ImageResolver interface {
	LargeImageURL(url string) string
}
