package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/adscrape"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	ad, err := deps.Ads.FindAdByURL(deps.Ctx, c.URL)
	if adscrape.ErrorCode(err) == adscrape.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: ad %q not found. Use 'adscrape list' to see saved ads.\n", c.URL)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adscrape.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(ad)
}
