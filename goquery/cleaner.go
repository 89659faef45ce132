package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/adscrape"
)

var _ adscrape.DescriptionCleaner = (*DescriptionCleaner)(nil)

// DescriptionCleaner strips markup from ad descriptions, keeping line breaks
// implied by <br> and block elements.
type DescriptionCleaner struct{}

// NewDescriptionCleaner creates a new DescriptionCleaner.
func NewDescriptionCleaner() *DescriptionCleaner {
	return &DescriptionCleaner{}
}

// CleanDescription returns the text content of the description HTML.
// Site-injected <label> elements are dropped.
func (c *DescriptionCleaner) CleanDescription(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	body := doc.Find("body")
	body.Find("label").Remove()
	body.Find("br").ReplaceWithHtml("\n")
	body.Find("p, div, li, h1, h2, h3, h4, h5, h6").AppendHtml("\n")

	return normalizeLines(body.Text())
}

// normalizeLines trims every line and collapses runs of blank lines.
func normalizeLines(s string) string {
	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
