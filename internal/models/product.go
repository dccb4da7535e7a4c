package models

// Product is the canonical preview record rendered for a product, a product
// variant or a collection. IsMissing marks a requested id the storefront did
// not return.
type Product struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	DisplaySKU   string `json:"display_sku,omitempty"`
	ExternalLink string `json:"external_link,omitempty"`
	IsMissing    bool   `json:"is_missing,omitempty"`
}

// Pagination reports whether another page can be requested.
//
// HasNextPage is a heuristic: the storefront exposes no total count, so a
// full page is taken to mean more data may exist.
type Pagination struct {
	HasNextPage bool `json:"has_next_page"`
}

// SearchResult is one page returned by a search engine.
type SearchResult struct {
	Pagination Pagination `json:"pagination"`
	Products   []Product  `json:"products"`
}
