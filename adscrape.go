// Package adscrape scrapes classified-ad listing pages from Kijiji and
// normalizes the embedded page payload into an AdInfo record.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package adscrape
