package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/adscrape"
	main "github.com/fwojciec/adscrape/cmd/adscrape"
	"github.com/fwojciec/adscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	found := func(_ context.Context, url string) (*adscrape.Ad, error) {
		return &adscrape.Ad{ID: "ad-123", URL: url, AdInfo: adscrape.AdInfo{Title: "Road bike"}}, nil
	}

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Ads:    &mock.AdService{},
		}

		err := (&main.DeleteCmd{URL: "https://www.kijiji.ca/v-x/1"}).Run(deps)

		assert.Equal(t, adscrape.EINVALID, adscrape.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes the ad found by URL", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		ads := &mock.AdService{
			FindAdByURLFn: found,
			DeleteAdFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Ads:    ads,
		}

		err := (&main.DeleteCmd{URL: "https://www.kijiji.ca/v-x/1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "ad-123", deletedID)
		assert.Contains(t, stdout.String(), `Deleted ad "Road bike"`)
	})

	t.Run("reports missing ad", func(t *testing.T) {
		t.Parallel()

		ads := &mock.AdService{
			FindAdByURLFn: func(_ context.Context, _ string) (*adscrape.Ad, error) {
				return nil, adscrape.Errorf(adscrape.ENOTFOUND, "ad not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Ads:    ads,
		}

		err := (&main.DeleteCmd{URL: "https://www.kijiji.ca/v-x/9", Force: true}).Run(deps)

		assert.Equal(t, adscrape.ENOTFOUND, adscrape.ErrorCode(err))
		assert.Contains(t, stderr.String(), `ad "https://www.kijiji.ca/v-x/9" not found`)
	})

	t.Run("returns error when delete fails", func(t *testing.T) {
		t.Parallel()

		ads := &mock.AdService{
			FindAdByURLFn: found,
			DeleteAdFn: func(_ context.Context, _ string) error {
				return errors.New("disk full")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Ads:    ads,
		}

		err := (&main.DeleteCmd{URL: "https://www.kijiji.ca/v-x/1", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error")
	})
}
