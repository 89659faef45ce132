// Package htmltomarkdown renders ad descriptions as Markdown using html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/adscrape"
)

// Ensure DescriptionCleaner implements adscrape.DescriptionCleaner at compile time.
var _ adscrape.DescriptionCleaner = (*DescriptionCleaner)(nil)

// DescriptionCleaner converts description HTML to Markdown, keeping
// emphasis, lists and links that plain-text cleaning would drop.
type DescriptionCleaner struct {
	conv *converter.Converter
}

// NewDescriptionCleaner creates a new DescriptionCleaner.
func NewDescriptionCleaner() *DescriptionCleaner {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &DescriptionCleaner{conv: conv}
}

// CleanDescription returns the description as Markdown.
// If conversion fails the trimmed input is returned.
func (c *DescriptionCleaner) CleanDescription(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(html)
	}

	return strings.TrimSpace(result)
}
