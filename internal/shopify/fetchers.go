package shopify

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/pagination"
)

type edge[N any] struct {
	Cursor string `json:"cursor"`
	Node   N      `json:"node"`
}

// ProductFetcher pages through a product search.
type ProductFetcher struct {
	client *Client
}

// CollectionFetcher pages through a collection search.
type CollectionFetcher struct {
	client *Client
}

var (
	_ pagination.Fetcher[models.RawProduct]    = (*ProductFetcher)(nil)
	_ pagination.Fetcher[models.RawCollection] = (*CollectionFetcher)(nil)
)

// NewProductFetcher returns a product search fetcher.
func NewProductFetcher(c *Client) *ProductFetcher {
	return &ProductFetcher{client: c}
}

// NewCollectionFetcher returns a collection search fetcher.
func NewCollectionFetcher(c *Client) *CollectionFetcher {
	return &CollectionFetcher{client: c}
}

func (f *ProductFetcher) FetchFirst(ctx context.Context, term string, first int) ([]models.RawProduct, error) {
	return f.fetch(ctx, term, first, "")
}

// FetchNext repeats the search of after starting at its last cursor, asking
// for as many records as after holds.
func (f *ProductFetcher) FetchNext(ctx context.Context, after []models.RawProduct) ([]models.RawProduct, error) {
	if len(after) == 0 {
		return nil, errors.New("no page to continue from")
	}
	last := after[len(after)-1]
	return f.fetch(ctx, last.Query, len(after), last.Cursor)
}

func (f *ProductFetcher) fetch(ctx context.Context, term string, first int, cursor string) ([]models.RawProduct, error) {
	var data struct {
		Products struct {
			Edges []edge[productNode] `json:"edges"`
		} `json:"products"`
	}
	if err := f.client.Query(ctx, productSearchQuery, f.client.searchVariables(term, first, cursor), &data); err != nil {
		return nil, errors.Wrap(err, "searching products")
	}

	page := make([]models.RawProduct, 0, len(data.Products.Edges))
	for _, e := range data.Products.Edges {
		p := e.Node.raw()
		p.Cursor = e.Cursor
		p.Query = term
		page = append(page, p)
	}
	return page, nil
}

func (f *CollectionFetcher) FetchFirst(ctx context.Context, term string, first int) ([]models.RawCollection, error) {
	return f.fetch(ctx, term, first, "")
}

// FetchNext behaves like ProductFetcher.FetchNext.
func (f *CollectionFetcher) FetchNext(ctx context.Context, after []models.RawCollection) ([]models.RawCollection, error) {
	if len(after) == 0 {
		return nil, errors.New("no page to continue from")
	}
	last := after[len(after)-1]
	return f.fetch(ctx, last.Query, len(after), last.Cursor)
}

func (f *CollectionFetcher) fetch(ctx context.Context, term string, first int, cursor string) ([]models.RawCollection, error) {
	var data struct {
		Collections struct {
			Edges []edge[collectionNode] `json:"edges"`
		} `json:"collections"`
	}
	if err := f.client.Query(ctx, collectionSearchQuery, f.client.searchVariables(term, first, cursor), &data); err != nil {
		return nil, errors.Wrap(err, "searching collections")
	}

	page := make([]models.RawCollection, 0, len(data.Collections.Edges))
	for _, e := range data.Collections.Edges {
		c := e.Node.raw()
		c.Cursor = e.Cursor
		c.Query = term
		page = append(page, c)
	}
	return page, nil
}

func (c *Client) searchVariables(term string, first int, cursor string) map[string]any {
	vars := map[string]any{
		"first":   first,
		"reverse": c.cfg.Reverse,
	}
	if term != "" {
		vars["query"] = term
	}
	if cursor != "" {
		vars["after"] = cursor
	}
	if c.cfg.SortBy != "" {
		vars["sortKey"] = c.cfg.SortBy
	}
	return vars
}
