package main

import (
	"fmt"

	"github.com/fwojciec/adscrape"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	ads, err := deps.Ads.FindAds(deps.Ctx, adscrape.AdFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adscrape.ErrorMessage(err))
		return err
	}

	if len(ads) == 0 {
		fmt.Fprintln(deps.Stdout, "No ads found. Use 'adscrape scrape --save' to add some.")
		return nil
	}

	for _, ad := range ads {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", ad.ID, ad.URL, ad.Title)
	}

	return nil
}
