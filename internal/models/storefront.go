package models

// Raw records as returned by the storefront API. IDs are already in their
// opaque (encoded) form; Cursor is the storefront's pagination cursor for the
// edge the record was read from and Query the search it was found with. A
// continuation request must repeat both.

type Image struct {
	Src string `json:"src"`
}

type RawProduct struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Handle   string       `json:"handle"`
	Cursor   string       `json:"-"`
	Query    string       `json:"-"`
	Images   []Image      `json:"images"`
	Variants []RawVariant `json:"variants"`
}

type VariantProduct struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type RawVariant struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	SKU     string          `json:"sku"`
	Image   *Image          `json:"image,omitempty"`
	Product *VariantProduct `json:"product,omitempty"`
}

type RawCollection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Cursor string `json:"-"`
	Query  string `json:"-"`
	Image  *Image `json:"image,omitempty"`
}

// FirstImage returns the first product image source or "".
func (p RawProduct) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}
