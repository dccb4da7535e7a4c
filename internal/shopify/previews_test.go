package shopify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/testutil"
	"github.com/pders01/skuref/internal/transform"
)

func skus(gids ...string) []string {
	out := make([]string, len(gids))
	for i, g := range gids {
		out[i] = transform.EncodeID(g)
	}
	return out
}

func recordIDs(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFetchProductPreviews(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, testutil.Catalog("Shoe", 3, 1), nil)
	c := newTestClient(t, sf)

	requested := append(skus(
		"gid://shopify/Product/1002",
		"gid://shopify/Product/9999",
		"gid://shopify/Collection/1",
		"gid://shopify/Product/1000",
	), "%%not-base64%%")

	previews, err := c.FetchProductPreviews(context.Background(), requested)
	require.NoError(t, err)

	require.Len(t, previews, len(requested))
	assert.Equal(t, requested, recordIDs(previews))

	assert.Equal(t, "Shoe 2", previews[0].Name)
	assert.False(t, previews[0].IsMissing)
	assert.Equal(t, "Product ID: 1002", previews[0].DisplaySKU)
	for _, i := range []int{1, 2, 4} {
		assert.True(t, previews[i].IsMissing, "record %d", i)
		assert.Empty(t, previews[i].Name)
	}
	assert.Equal(t, "Shoe 0", previews[3].Name)
}

func TestFetchVariantPreviews(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, testutil.Catalog("Shirt", 2, 2), nil)
	c := newTestClient(t, sf)

	requested := skus("gid://shopify/ProductVariant/10011", "gid://shopify/ProductVariant/1")
	previews, err := c.FetchVariantPreviews(context.Background(), requested)
	require.NoError(t, err)

	require.Len(t, previews, 2)
	assert.Equal(t, "Shirt 1 (V1)", previews[0].Name)
	assert.Equal(t, "SKU: SKU-1001-1", previews[0].DisplaySKU)
	assert.Equal(t, "https://shop.example.com/admin/products/1001/variants/10011", previews[0].ExternalLink)
	assert.True(t, previews[1].IsMissing)
}

func TestFetchCollectionPreviews(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, nil, []testutil.StoreCollection{
		{GID: "gid://shopify/Collection/5", Title: "Sale", Image: "https://cdn.example.com/c5.png"},
	})
	c := newTestClient(t, sf)

	previews, err := c.FetchCollectionPreviews(context.Background(), skus("gid://shopify/Collection/5"))
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, "Sale", previews[0].Name)
	assert.Equal(t, "https://cdn.example.com/c5.png", previews[0].Image)
}

func TestFetchPreviewsChunks(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, testutil.Catalog("Hat", 7, 0), nil)
	c := newTestClient(t, sf, func(cfg *Config) {
		cfg.ChunkSize = 3
		cfg.Concurrency = 2
	})

	var gids []string
	for _, p := range sf.Products {
		gids = append(gids, p.GID)
	}

	previews, err := c.FetchProductPreviews(context.Background(), skus(gids...))
	require.NoError(t, err)
	assert.Len(t, previews, 7)
	assert.Equal(t, 3, sf.Calls("ProductNodes"))
	for _, p := range previews {
		assert.False(t, p.IsMissing)
	}
}

func TestFetchPreviewsEmpty(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, nil, nil)
	c := newTestClient(t, sf)

	previews, err := c.FetchProductPreviews(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, previews)
	assert.Zero(t, sf.Calls("ProductNodes"))
}

func TestFetchPreviewsAllInvalid(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, nil, nil)
	c := newTestClient(t, sf)

	previews, err := c.FetchCollectionPreviews(context.Background(), []string{"garbage"})
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.True(t, previews[0].IsMissing)
	assert.Zero(t, sf.Calls("CollectionNodes"))
}

func TestFetchPreviewsError(t *testing.T) {
	sf := testutil.NewStorefront(t, testToken, testutil.Catalog("Hat", 1, 0), nil)
	sf.SetGraphQLError("Internal error")
	c := newTestClient(t, sf)

	_, err := c.FetchProductPreviews(context.Background(), skus("gid://shopify/Product/1000"))
	assert.Error(t, err)
}

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk(nil, 3))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunk([]string{"a", "b", "c"}, 2))
	assert.Equal(t, [][]string{{"a", "b"}}, chunk([]string{"a", "b"}, 2))
}
