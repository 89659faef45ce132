package mock

import (
	"context"

	"github.com/fwojciec/adscrape"
)

var _ adscrape.AdWriter = (*AdWriter)(nil)

// AdWriter is a mock implementation of adscrape.AdWriter.
type AdWriter struct {
	SaveAdFn func(ctx context.Context, ad *adscrape.Ad) error
}

func (w *AdWriter) SaveAd(ctx context.Context, ad *adscrape.Ad) error {
	return w.SaveAdFn(ctx, ad)
}
