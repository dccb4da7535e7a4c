package pagination

import (
	"context"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/transform"
)

// Searcher is what the UI drives: one page per call, keyed by search term.
type Searcher interface {
	FetchNext(ctx context.Context, term string) (models.SearchResult, error)
}

var (
	_ Searcher = (*Engine[models.RawProduct])(nil)
	_ Searcher = (*VariantEngine)(nil)
)

// NewProductEngine searches products.
func NewProductEngine(fetcher Fetcher[models.RawProduct], opts Options) *Engine[models.RawProduct] {
	return NewEngine(fetcher,
		func(p models.RawProduct) string { return p.ID },
		func(p models.RawProduct) models.Product { return transform.Product(p, opts.APIEndpoint) },
		opts,
	)
}

// NewCollectionEngine searches collections.
func NewCollectionEngine(fetcher Fetcher[models.RawCollection], opts Options) *Engine[models.RawCollection] {
	return NewEngine(fetcher,
		func(c models.RawCollection) string { return c.ID },
		func(c models.RawCollection) models.Product { return transform.Collection(c, opts.APIEndpoint) },
		opts,
	)
}
