package market

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// marketplaces allowed to source a listing. anything else on the page
// (auctions, offers, unknown resellers) is dropped.
var allowedProviders = map[string]bool{
	"Marketapp": true,
	"Getgems":   true,
	"Fragment":  true,
}

// Listings extracts up to limit valid listing rows from collection
// page markup. a row missing any marker, carrying a non-positive price
// or an unknown provider is skipped without aborting the scan, and the
// scan stops as soon as limit rows have been collected. unparseable
// markup yields nil, parsing is best-effort and never errors.
func Listings(markup string, limit int) []Listing {
	if limit <= 0 {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var out []Listing
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		name := strings.TrimSpace(row.Find("div.table-cell-value.tm-value").First().Text())
		priceStr, _ := row.Find("span[data-nft-price]").First().Attr("data-nft-price")
		address, _ := row.Find("span[data-nft-address]").First().Attr("data-nft-address")
		provider := strings.TrimSpace(row.Find("div.table-cell-status-thin.tm-status-market").First().Text())

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			return true
		}
		if name == "" || address == "" || !allowedProviders[provider] {
			return true
		}

		out = append(out, Listing{
			Name:     name,
			Slug:     Slugify(name),
			Price:    price,
			Address:  address,
			Provider: provider,
		})
		return len(out) < limit
	})
	return out
}
