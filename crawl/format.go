package crawl

import (
	"fmt"
	"strings"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatSummary renders the counts of a batch scrape on one line.
// Zero counts other than found are omitted.
func FormatSummary(r *Result) string {
	parts := []string{fmt.Sprintf("%d found", r.Found)}
	if r.Saved > 0 {
		parts = append(parts, fmt.Sprintf("%d saved", r.Saved))
	}
	if r.Absent > 0 {
		parts = append(parts, fmt.Sprintf("%d without ad data", r.Absent))
	}
	if r.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.Failed))
	}
	if r.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", r.Skipped))
	}
	if r.Duplicates > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicate", r.Duplicates))
	}
	return strings.Join(parts, ", ")
}
