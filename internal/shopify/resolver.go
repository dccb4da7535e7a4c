package shopify

import (
	"context"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/pagination"
)

// SKU types a field can store.
const (
	SkuTypeProduct    = "product"
	SkuTypeCollection = "collection"
	SkuTypeVariant    = "variant"
)

// MakeSkuResolver returns the search engine for skuType. Anything other than
// product or collection searches variants.
func (c *Client) MakeSkuResolver(skuType string, opts pagination.Options) pagination.Searcher {
	opts.APIEndpoint = c.APIEndpoint()

	switch skuType {
	case SkuTypeProduct:
		return pagination.NewProductEngine(NewProductFetcher(c), opts)
	case SkuTypeCollection:
		return pagination.NewCollectionEngine(NewCollectionFetcher(c), opts)
	default:
		return pagination.NewVariantEngine(NewProductFetcher(c), opts)
	}
}

// PreviewFunc resolves stored SKUs into preview records.
type PreviewFunc func(ctx context.Context, skus []string) ([]models.Product, error)

// MakePreviewResolver returns the preview lookup for skuType, defaulting to
// variants like MakeSkuResolver.
func (c *Client) MakePreviewResolver(skuType string) PreviewFunc {
	switch skuType {
	case SkuTypeProduct:
		return c.FetchProductPreviews
	case SkuTypeCollection:
		return c.FetchCollectionPreviews
	default:
		return c.FetchVariantPreviews
	}
}
