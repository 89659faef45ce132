package mock

import "github.com/fwojciec/adscrape"

// Compile-time interface verification.
var (
	_ adscrape.Extractor          = (*Extractor)(nil)
	_ adscrape.DescriptionCleaner = (*DescriptionCleaner)(nil)
	_ adscrape.ImageResolver      = (*ImageResolver)(nil)
)

// Extractor is a mock implementation of adscrape.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*adscrape.AdInfo, bool)
}

func (e *Extractor) Extract(html string) (*adscrape.AdInfo, bool) {
	return e.ExtractFn(html)
}

// DescriptionCleaner is a mock implementation of adscrape.DescriptionCleaner.
type DescriptionCleaner struct {
	CleanDescriptionFn func(html string) string
}

func (c *DescriptionCleaner) CleanDescription(html string) string {
	return c.CleanDescriptionFn(html)
}

// ImageResolver is a mock implementation of adscrape.ImageResolver.
type ImageResolver struct {
	LargeImageURLFn func(url string) string
}

func (r *ImageResolver) LargeImageURL(url string) string {
	return r.LargeImageURLFn(url)
}
