package shopify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/pagination"
	"github.com/pders01/skuref/internal/testutil"
	"github.com/pders01/skuref/internal/transform"
)

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductFetcherPages(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, testutil.Catalog("Shoe", 5, 1), nil)
	f := NewProductFetcher(newTestClient(t, sf))

	first, err := f.FetchFirst(context.Background(), "shoe", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Shoe 0", first[0].Title)
	assert.Equal(t, transform.EncodeID("gid://shopify/Product/1000"), first[0].ID)
	assert.Equal(t, "gid://shopify/Product/1001", first[1].Cursor)
	assert.Equal(t, "shoe", first[1].Query)
	require.Len(t, first[0].Variants, 1)
	assert.Equal(t, "SKU-1000-0", first[0].Variants[0].SKU)
	assert.Equal(t, "https://cdn.example.com/p1000.png", first[0].FirstImage())

	next, err := f.FetchNext(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Equal(t, "Shoe 2", next[0].Title)

	vars := sf.Variables()
	last := vars[len(vars)-1]
	assert.Equal(t, "gid://shopify/Product/1001", last["after"])
	assert.Equal(t, "shoe", last["query"])
	assert.Equal(t, "TITLE", last["sortKey"])

	_, err = f.FetchNext(context.Background(), nil)
	assert.Error(t, err)
}

func TestCollectionFetcher(t *testing.T) {
	collections := []testutil.StoreCollection{
		{GID: "gid://shopify/Collection/1", Title: "Summer", Image: "https://cdn.example.com/c1.png"},
		{GID: "gid://shopify/Collection/2", Title: "Winter"},
	}
	sf := testutil.NewStorefront(t, testToken, nil, collections)
	f := NewCollectionFetcher(newTestClient(t, sf))

	page, err := f.FetchFirst(context.Background(), "", 20)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "https://cdn.example.com/c1.png", page[0].Image.Src)
	assert.Nil(t, page[1].Image)
}

func TestSkuResolverEndToEnd(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, testutil.Catalog("Shoe", 25, 0), nil)
	c := newTestClient(t, sf)

	search := c.MakeSkuResolver(SkuTypeProduct, pagination.Options{})

	first, err := search.FetchNext(context.Background(), "shoe")
	require.NoError(t, err)
	assert.Len(t, first.Products, 20)
	assert.True(t, first.Pagination.HasNextPage)
	assert.Equal(t, "https://shop.example.com/admin/products/1000", first.Products[0].ExternalLink)

	second, err := search.FetchNext(context.Background(), "shoe")
	require.NoError(t, err)
	assert.Len(t, second.Products, 5)
	assert.False(t, second.Pagination.HasNextPage)
	assert.Equal(t, "Shoe 20", second.Products[0].Name)
}

func TestSkuResolverVariants(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, testutil.Catalog("Shirt", 3, 3), nil)
	c := newTestClient(t, sf)

	search := c.MakeSkuResolver("anything", pagination.Options{PageSize: 4})

	first, err := search.FetchNext(context.Background(), "shirt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shirt 0 (V0)", "Shirt 0 (V1)", "Shirt 0 (V2)", "Shirt 1 (V0)"}, names(first.Products))
	assert.True(t, first.Pagination.HasNextPage)
	assert.Equal(t, "SKU: SKU-1000-0", first.Products[0].DisplaySKU)

	second, err := search.FetchNext(context.Background(), "shirt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shirt 1 (V1)", "Shirt 1 (V2)", "Shirt 2 (V0)", "Shirt 2 (V1)"}, names(second.Products))
}

func TestSkuResolverCollections(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, nil, []testutil.StoreCollection{
		{GID: "gid://shopify/Collection/7", Title: "Sale"},
	})
	c := newTestClient(t, sf)

	res, err := c.MakeSkuResolver(SkuTypeCollection, pagination.Options{}).FetchNext(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "https://shop.example.com/admin/collections/7", res.Products[0].ExternalLink)
	assert.False(t, res.Pagination.HasNextPage)
}
