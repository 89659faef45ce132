// Package fs provides file-based export of scraped ads.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/adscrape"
)

// URLToPath converts a listing URL to a file name.
// Listing URLs end in the numeric ad id, which becomes the name:
// https://www.kijiji.ca/v-bikes/toronto/road-bike/1600000001 → 1600000001.json
// Other URLs fall back to their path with slashes replaced by dashes.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "index.json", nil
	}

	segments := strings.Split(path, "/")
	if last := segments[len(segments)-1]; isDigits(last) {
		return last + ".json", nil
	}

	return strings.Join(segments, "-") + ".json", nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Ensure Writer implements adscrape.AdWriter at compile time.
var _ adscrape.AdWriter = (*Writer)(nil)

// Writer writes ads as indented JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// SaveAd writes the ad to disk, replacing any earlier export of the same URL.
func (w *Writer) SaveAd(ctx context.Context, ad *adscrape.Ad) error {
	if err := ad.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(ad.URL)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(ad, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(filepath.Join(w.baseDir, relPath), data, 0644)
}
