// Package gift fetches a single gift's public detail page and extracts
// its attribute table.
package gift

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Attribute is one th/td row of the detail table. Value is the
// highlighted rarity ("2.5%"), Name the remaining cell text.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Owner struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type Details struct {
	Owner     *Owner     `json:"owner"`
	Model     *Attribute `json:"model"`
	Backdrop  *Attribute `json:"backdrop"`
	Symbol    *Attribute `json:"symbol"`
	Signature string     `json:"signature"`
}

// ParseDetails extracts the attribute table from detail page markup.
// absent rows come back nil, the caller serializes them as null.
func ParseDetails(markup string) (Details, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Details{}, err
	}

	attrs := map[string]*Attribute{}
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find("th").First().Text())
		if label == "" {
			return
		}
		td := row.Find("td").First()
		if td.Length() == 0 {
			return
		}

		value := strings.TrimSpace(td.Find("mark").First().Text())
		rest := td.Clone()
		rest.Find("mark").Remove()
		name := strings.TrimSpace(rest.Text())

		attrs[label] = &Attribute{Name: name, Value: value}
	})

	var owner *Owner
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if strings.TrimSpace(row.Find("th").First().Text()) != "Owner" {
			return true
		}
		anchor := row.Find(`a[href^="https://t.me/"]`).First()
		name := strings.TrimSpace(anchor.Find("span").First().Text())
		link, _ := anchor.Attr("href")
		if name != "" || link != "" {
			owner = &Owner{Name: name, Link: link}
		}
		return false
	})

	return Details{
		Owner:     owner,
		Model:     attrs["Model"],
		Backdrop:  attrs["Backdrop"],
		Symbol:    attrs["Symbol"],
		Signature: strings.TrimSpace(doc.Find("th.footer").First().Text()),
	}, nil
}
