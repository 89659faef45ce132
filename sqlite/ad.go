package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/adscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ adscrape.AdService = (*AdService)(nil)

// AdService implements adscrape.AdService using SQLite.
type AdService struct {
	db *DB
}

// NewAdService creates a new AdService.
func NewAdService(db *DB) *AdService {
	return &AdService{db: db}
}

// hashAd computes the xxHash of the ad's JSON form and returns it as hex.
// Map keys are sorted by encoding/json, so equal ads hash equally.
func hashAd(info *adscrape.AdInfo) (string, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

// SaveAd creates the ad or replaces the stored ad with the same URL.
// A replaced ad keeps its ID.
func (s *AdService) SaveAd(ctx context.Context, ad *adscrape.Ad) error {
	if err := ad.Validate(); err != nil {
		return err
	}

	hash, err := hashAd(&ad.AdInfo)
	if err != nil {
		return fmt.Errorf("failed to hash ad: %w", err)
	}
	images, err := json.Marshal(nonNilImages(ad.Images))
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}
	attributes, err := encodeAttributes(ad.Attributes)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	var existingID string
	err = s.db.QueryRowContext(ctx, "SELECT id FROM ads WHERE url = ?", ad.URL).Scan(&existingID)
	switch {
	case err == nil:
		id = existingID
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	scrapedAt := time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ads (id, url, title, description, posted_at, image, images, attributes, content_hash, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			posted_at = excluded.posted_at,
			image = excluded.image,
			images = excluded.images,
			attributes = excluded.attributes,
			content_hash = excluded.content_hash,
			scraped_at = excluded.scraped_at
	`, id, ad.URL, ad.Title, ad.Description, formatTime(ad.Date), ad.Image, string(images),
		attributes, hash, formatTime(scrapedAt))
	if err != nil {
		return err
	}

	ad.ID = id
	ad.ContentHash = hash
	ad.ScrapedAt = scrapedAt
	return nil
}

// FindAdByURL retrieves an ad by its listing URL.
func (s *AdService) FindAdByURL(ctx context.Context, url string) (*adscrape.Ad, error) {
	ads, err := s.FindAds(ctx, adscrape.AdFilter{URL: &url, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(ads) == 0 {
		return nil, adscrape.Errorf(adscrape.ENOTFOUND, "ad not found")
	}
	return ads[0], nil
}

// FindAds retrieves ads matching the filter, most recently scraped first.
func (s *AdService) FindAds(ctx context.Context, filter adscrape.AdFilter) ([]*adscrape.Ad, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, url, title, description, posted_at, image, images, attributes, content_hash, scraped_at
		FROM ads WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY scraped_at DESC, url ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []*adscrape.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}

	return ads, rows.Err()
}

// DeleteAd permanently removes an ad.
func (s *AdService) DeleteAd(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM ads WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return adscrape.Errorf(adscrape.ENOTFOUND, "ad not found")
	}

	return nil
}

func scanAd(rows *sql.Rows) (*adscrape.Ad, error) {
	var ad adscrape.Ad
	var postedAt, images, attributes, scrapedAt string

	if err := rows.Scan(&ad.ID, &ad.URL, &ad.Title, &ad.Description, &postedAt, &ad.Image,
		&images, &attributes, &ad.ContentHash, &scrapedAt); err != nil {
		return nil, err
	}

	var err error
	if ad.Date, err = parseTime(postedAt, "posted_at"); err != nil {
		return nil, err
	}
	if ad.ScrapedAt, err = parseTime(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(images), &ad.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	if ad.Attributes, err = decodeAttributes(attributes); err != nil {
		return nil, err
	}

	return &ad, nil
}

func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
