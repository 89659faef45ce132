package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/adscrape"
	"github.com/fwojciec/adscrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAd(url string) *adscrape.Ad {
	ad := &adscrape.Ad{URL: url}
	ad.Title = "Road bike"
	ad.Description = "Great bike"
	ad.Date = time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC)
	ad.Image = "http://x/share.jpg"
	ad.Images = []string{"http://x/1.jpg", "http://x/2.jpg"}
	ad.Attributes = map[string]adscrape.Value{
		"price":     adscrape.NumberValue(25.99),
		"delivery":  adscrape.BoolValue(true),
		"available": adscrape.DateValue(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		"forsaleby": adscrape.StringValue("ownr"),
		"looksdate": adscrape.StringValue("2023-06-01"),
	}
	return ad
}

func TestAdService_SaveAd(t *testing.T) {
	t.Parallel()

	t.Run("creates ad with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ad := newTestAd("https://www.kijiji.ca/v-x/1")

		err := svc.SaveAd(context.Background(), ad)

		require.NoError(t, err)
		assert.NotEmpty(t, ad.ID)
		assert.NotEmpty(t, ad.ContentHash)
		assert.False(t, ad.ScrapedAt.IsZero())
	})

	t.Run("returns error for invalid ad", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))

		err := svc.SaveAd(context.Background(), &adscrape.Ad{})

		require.Error(t, err)
		assert.Equal(t, adscrape.EINVALID, adscrape.ErrorCode(err))
	})

	t.Run("replaces ad with same URL and keeps ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		first := newTestAd("https://www.kijiji.ca/v-x/1")
		require.NoError(t, svc.SaveAd(ctx, first))

		second := newTestAd("https://www.kijiji.ca/v-x/1")
		second.Title = "Road bike (reduced)"
		require.NoError(t, svc.SaveAd(ctx, second))

		assert.Equal(t, first.ID, second.ID)
		assert.NotEqual(t, first.ContentHash, second.ContentHash)

		ads, err := svc.FindAds(ctx, adscrape.AdFilter{})
		require.NoError(t, err)
		require.Len(t, ads, 1)
		assert.Equal(t, "Road bike (reduced)", ads[0].Title)
	})

	t.Run("same content hashes equally", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		a := newTestAd("https://www.kijiji.ca/v-x/1")
		b := newTestAd("https://www.kijiji.ca/v-x/2")
		require.NoError(t, svc.SaveAd(ctx, a))
		require.NoError(t, svc.SaveAd(ctx, b))

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})
}

func TestAdService_FindAdByURL(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		ad := newTestAd("https://www.kijiji.ca/v-x/1")
		require.NoError(t, svc.SaveAd(ctx, ad))

		got, err := svc.FindAdByURL(ctx, ad.URL)
		require.NoError(t, err)

		assert.Equal(t, ad.ID, got.ID)
		assert.Equal(t, ad.URL, got.URL)
		assert.Equal(t, ad.Title, got.Title)
		assert.Equal(t, ad.Description, got.Description)
		assert.True(t, ad.Date.Equal(got.Date))
		assert.Equal(t, ad.Image, got.Image)
		assert.Equal(t, ad.Images, got.Images)
		assert.Equal(t, ad.ContentHash, got.ContentHash)
		assert.True(t, ad.ScrapedAt.Equal(got.ScrapedAt))

		require.Len(t, got.Attributes, len(ad.Attributes))
		for k, want := range ad.Attributes {
			v := got.Attributes[k]
			assert.Equal(t, want.Kind(), v.Kind(), "attribute %s", k)
			assert.Equal(t, want.String(), v.String(), "attribute %s", k)
		}
	})

	t.Run("keeps zero date and empty collections", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		ad := &adscrape.Ad{URL: "https://www.kijiji.ca/v-x/empty"}
		require.NoError(t, svc.SaveAd(ctx, ad))

		got, err := svc.FindAdByURL(ctx, ad.URL)
		require.NoError(t, err)
		assert.True(t, got.Date.IsZero())
		assert.Empty(t, got.Images)
		assert.Empty(t, got.Attributes)
	})

	t.Run("returns not found for unknown URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))

		_, err := svc.FindAdByURL(context.Background(), "https://www.kijiji.ca/v-x/missing")

		require.Error(t, err)
		assert.Equal(t, adscrape.ENOTFOUND, adscrape.ErrorCode(err))
	})
}

func TestAdService_FindAds(t *testing.T) {
	t.Parallel()

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		for i := range 5 {
			require.NoError(t, svc.SaveAd(ctx, newTestAd(fmt.Sprintf("https://www.kijiji.ca/v-x/%d", i))))
		}

		all, err := svc.FindAds(ctx, adscrape.AdFilter{})
		require.NoError(t, err)
		require.Len(t, all, 5)

		page, err := svc.FindAds(ctx, adscrape.AdFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, all[1].ID, page[0].ID)
		assert.Equal(t, all[2].ID, page[1].ID)

		rest, err := svc.FindAds(ctx, adscrape.AdFilter{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, rest, 2)
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		a := newTestAd("https://www.kijiji.ca/v-x/1")
		b := newTestAd("https://www.kijiji.ca/v-x/2")
		require.NoError(t, svc.SaveAd(ctx, a))
		require.NoError(t, svc.SaveAd(ctx, b))

		ads, err := svc.FindAds(ctx, adscrape.AdFilter{ID: &b.ID})
		require.NoError(t, err)
		require.Len(t, ads, 1)
		assert.Equal(t, b.URL, ads[0].URL)
	})

	t.Run("most recently scraped first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SaveAd(ctx, newTestAd("https://www.kijiji.ca/v-x/old")))
		time.Sleep(2 * time.Millisecond)
		require.NoError(t, svc.SaveAd(ctx, newTestAd("https://www.kijiji.ca/v-x/new")))

		ads, err := svc.FindAds(ctx, adscrape.AdFilter{})
		require.NoError(t, err)
		require.Len(t, ads, 2)
		assert.Equal(t, "https://www.kijiji.ca/v-x/new", ads[0].URL)
	})
}

func TestAdService_DeleteAd(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing ad", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))
		ctx := context.Background()

		ad := newTestAd("https://www.kijiji.ca/v-x/1")
		require.NoError(t, svc.SaveAd(ctx, ad))

		require.NoError(t, svc.DeleteAd(ctx, ad.ID))

		_, err := svc.FindAdByURL(ctx, ad.URL)
		assert.Equal(t, adscrape.ENOTFOUND, adscrape.ErrorCode(err))
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAdService(setupTestDB(t))

		err := svc.DeleteAd(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, adscrape.ENOTFOUND, adscrape.ErrorCode(err))
	})
}
