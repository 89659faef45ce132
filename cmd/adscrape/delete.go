package main

import (
	"fmt"

	"github.com/fwojciec/adscrape"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return adscrape.Errorf(adscrape.EINVALID, "use --force to confirm deletion")
	}

	ad, err := deps.Ads.FindAdByURL(deps.Ctx, c.URL)
	if adscrape.ErrorCode(err) == adscrape.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: ad %q not found. Use 'adscrape list' to see saved ads.\n", c.URL)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adscrape.ErrorMessage(err))
		return err
	}

	if err := deps.Ads.DeleteAd(deps.Ctx, ad.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted ad %q\n", ad.Title)
	return nil
}
