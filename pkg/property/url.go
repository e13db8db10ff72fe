// Package property fetches a Zillow property record for an address and
// persists it as an indented JSON document.
package property

import "strings"

// DefaultBaseURL is the home-details prefix every lookup URL starts with.
const DefaultBaseURL = "https://www.zillow.com/homedetails/"

// LookupURL builds the home-details URL for an address and zpid: spaces
// become hyphens, commas are dropped, and "<zpid>_zpid/" is appended.
//
//	LookupURL(DefaultBaseURL, "858 Shady Grove Ln, Harrah, OK, 73045", "339897685")
//	// https://www.zillow.com/homedetails/858-Shady-Grove-Ln-Harrah-OK-73045/339897685_zpid/
func LookupURL(base, address, zpid string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	slug := strings.ReplaceAll(address, " ", "-")
	slug = strings.ReplaceAll(slug, ",", "")
	return base + slug + "/" + zpid + "_zpid/"
}
