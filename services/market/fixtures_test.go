package market

import (
	"fmt"
	"strings"
)

func listingRow(name, price, address, provider string) string {
	return fmt.Sprintf(`<tr>
  <td><div class="table-cell-value tm-value">%s</div></td>
  <td><span data-nft-price=%q></span></td>
  <td><span data-nft-address=%q></span></td>
  <td><div class="table-cell-status-thin tm-status-market">%s</div></td>
</tr>`, name, price, address, provider)
}

// listingPage wraps rows in a full document padded past the
// classifier's minimum page length, the way a real collection page
// always is.
func listingPage(rows ...string) string {
	padding := strings.Repeat("<!-- layout chrome -->\n", 128)
	return fmt.Sprintf(
		"<html><head><title>collection</title></head><body>%s<table><tbody>%s</tbody></table></body></html>",
		padding, strings.Join(rows, "\n"),
	)
}

func fiveValidOneInvalid() []string {
	return []string{
		listingRow("Crystal Ball #1", "4.5", "EQAddr1", "Marketapp"),
		listingRow("Crystal Ball #2", "", "EQAddr2", "Marketapp"), // missing price
		listingRow("Crystal Ball #3", "5.0", "EQAddr3", "Getgems"),
		listingRow("Crystal Ball #4", "5.1", "EQAddr4", "Fragment"),
		listingRow("Crystal Ball #5", "6.25", "EQAddr5", "Marketapp"),
		listingRow("Crystal Ball #6", "7", "EQAddr6", "Getgems"),
	}
}
