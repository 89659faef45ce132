package mock

import (
	"context"

	"github.com/fwojciec/adscrape"
)

var _ adscrape.AdService = (*AdService)(nil)

// AdService is a mock implementation of adscrape.AdService.
type AdService struct {
	SaveAdFn      func(ctx context.Context, ad *adscrape.Ad) error
	FindAdByURLFn func(ctx context.Context, url string) (*adscrape.Ad, error)
	FindAdsFn     func(ctx context.Context, filter adscrape.AdFilter) ([]*adscrape.Ad, error)
	DeleteAdFn    func(ctx context.Context, id string) error
}

func (s *AdService) SaveAd(ctx context.Context, ad *adscrape.Ad) error {
	return s.SaveAdFn(ctx, ad)
}

func (s *AdService) FindAdByURL(ctx context.Context, url string) (*adscrape.Ad, error) {
	return s.FindAdByURLFn(ctx, url)
}

func (s *AdService) FindAds(ctx context.Context, filter adscrape.AdFilter) ([]*adscrape.Ad, error) {
	return s.FindAdsFn(ctx, filter)
}

func (s *AdService) DeleteAd(ctx context.Context, id string) error {
	return s.DeleteAdFn(ctx, id)
}
