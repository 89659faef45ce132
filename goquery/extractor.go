// Package goquery implements HTML processing for listing pages using goquery.
package goquery

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/adscrape"
	"golang.org/x/net/html"
)

const (
	// payloadSelector addresses the script tag carrying the page state.
	payloadSelector = "#FesLoader > script"
	// payloadPrefix is the assignment that precedes the JSON object.
	payloadPrefix = "window.__data="
)

// Ensure Extractor implements adscrape.Extractor at compile time.
var _ adscrape.Extractor = (*Extractor)(nil)

// Extractor reads the ad payload embedded in a Kijiji listing page.
type Extractor struct {
	cleaner adscrape.DescriptionCleaner
	images  adscrape.ImageResolver
}

// NewExtractor creates an Extractor that cleans descriptions with cleaner
// and resolves image URLs with images.
func NewExtractor(cleaner adscrape.DescriptionCleaner, images adscrape.ImageResolver) *Extractor {
	return &Extractor{cleaner: cleaner, images: images}
}

// Extract returns the ad described by the page's embedded payload.
// Pages without the payload script, with malformed JSON, or without
// config.adInfo and config.VIP yield false.
func (e *Extractor) Extract(s string) (*adscrape.AdInfo, bool) {
	data, ok := payloadJSON(s)
	if !ok {
		return nil, false
	}

	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, false
	}
	if p.Config == nil || p.Config.AdInfo == nil || p.Config.VIP == nil {
		return nil, false
	}

	return e.build(p.Config), true
}

// payloadJSON returns the JSON text assigned in the payload script.
func payloadJSON(s string) (string, bool) {
	node, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", false
	}
	doc := goquery.NewDocumentFromNode(node)

	text := doc.Find(payloadSelector).Text()
	text = strings.Replace(text, payloadPrefix, "", 1)

	// Drop the trailing statement terminator.
	_, size := utf8.DecodeLastRuneInString(text)
	text = text[:len(text)-size]

	if len(text) == 0 {
		return "", false
	}
	return text, true
}

func (e *Extractor) build(cfg *configPayload) *adscrape.AdInfo {
	info := adscrape.NewAdInfo()
	vip := cfg.VIP

	info.Title = cfg.AdInfo.Title.Value
	info.Description = e.cleaner.CleanDescription(vip.Description.Value)
	info.Date = vip.SortingDate.Time()
	info.Image = e.images.LargeImageURL(cfg.AdInfo.SharingImageURL.Value)

	for _, m := range vip.Media {
		if m.Type.Value == "image" && m.Href.Valid && m.Href.Value != "" {
			info.Images = append(info.Images, e.images.LargeImageURL(m.Href.Value))
		}
	}

	// Later duplicates of a machine key overwrite earlier ones.
	for _, a := range vip.AdAttributes {
		if a.MachineKey.Valid && a.MachineValue.Valid {
			info.Attributes[a.MachineKey.Value] = adscrape.CastAttributeValue(a.MachineValue.Value)
		}
	}

	if vip.Price.Valid && vip.Price.Value.Amount.Valid {
		info.Attributes[adscrape.AttrPrice] = adscrape.NumberValue(vip.Price.Value.Amount.Value / 100.0)
	}
	if vip.AdLocation.Present() {
		info.Attributes[adscrape.AttrLocation] = vip.AdLocation.Value
	}
	if vip.AdType.Present() {
		info.Attributes[adscrape.AttrType] = vip.AdType.Value
	}
	if vip.VisitCounter.Present() {
		info.Attributes[adscrape.AttrVisits] = vip.VisitCounter.Value
	}

	return info
}
