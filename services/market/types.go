// Package market resolves marketplace listing pages for a gift
// collection into structured records. the marketplace fronts its pages
// with anti-automation checks, so acquisition races a cheap direct
// fetch against a full browser render and takes whichever produces a
// real page first.
package market

// Listing is one on-sale gift row extracted from a collection page.
// Model, Backdrop and Symbol are only set when enrichment was asked
// for.
type Listing struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Price    float64 `json:"price"`
	Address  string  `json:"nftAddress"`
	Provider string  `json:"provider"`
	Model    string  `json:"model,omitempty"`
	Backdrop string  `json:"backdrop,omitempty"`
	Symbol   string  `json:"symbol,omitempty"`
}

// Filter narrows a collection page by gift attributes. empty values
// and the "all" sentinel mean "do not filter on this attribute".
type Filter struct {
	Backdrop string `json:"backdrop"`
	Model    string `json:"model"`
	Symbol   string `json:"symbol"`
}
