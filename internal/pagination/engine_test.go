package pagination

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/testutil"
)

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestEngineTwoPages(t *testing.T) {
	ctx := context.Background()
	fetcher := testutil.ProductFetcher(testutil.Products("Shoe", 25, 0))
	engine := NewProductEngine(fetcher, Options{})

	first, err := engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)
	assert.Len(t, first.Products, PerPage)
	assert.True(t, first.Pagination.HasNextPage)

	second, err := engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)
	assert.Len(t, second.Products, 5)
	assert.False(t, second.Pagination.HasNextPage)

	all := append(ids(first.Products), ids(second.Products)...)
	assert.Len(t, all, 25)
	assert.ElementsMatch(t, uniq(all), all)
	assert.Equal(t, 1, fetcher.FirstCalls)
	assert.Equal(t, 1, fetcher.NextCalls)
	assert.Equal(t, 25, engine.SeenCount())
	assert.Len(t, engine.Retained(), 25)
}

func TestEngineNoDuplicatesWithOverlappingPages(t *testing.T) {
	ctx := context.Background()
	fetcher := testutil.ProductFetcher(testutil.Products("Shoe", 45, 0))
	fetcher.Overlap = 3
	engine := NewProductEngine(fetcher, Options{})

	var all []string
	var sizes []int
	for {
		res, err := engine.FetchNext(ctx, "shoe")
		require.NoError(t, err)
		all = append(all, ids(res.Products)...)
		sizes = append(sizes, len(res.Products))
		if !res.Pagination.HasNextPage {
			break
		}
	}

	assert.Equal(t, []int{20, 17, 8}, sizes)
	assert.Len(t, all, 45)
	assert.Equal(t, uniq(all), all)
}

func TestEngineTermReset(t *testing.T) {
	ctx := context.Background()
	catalog := append(testutil.Products("Shoe", 30, 0), testutil.Products("Boot", 30, 0)...)

	fresh := NewProductEngine(testutil.ProductFetcher(catalog), Options{})
	want, err := fresh.FetchNext(ctx, "shoe")
	require.NoError(t, err)

	engine := NewProductEngine(testutil.ProductFetcher(catalog), Options{})
	_, err = engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)
	_, err = engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)
	_, err = engine.FetchNext(ctx, "boot")
	require.NoError(t, err)

	got, err := engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, "shoe", engine.Term())
	assert.Equal(t, PerPage, engine.SeenCount())
}

func TestEngineErrorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	fetcher := testutil.ProductFetcher(testutil.Products("Shoe", 30, 0))
	engine := NewProductEngine(fetcher, Options{})

	_, err := engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)

	fetcher.Err = errors.New("storefront unavailable")
	_, err = engine.FetchNext(ctx, "shoe")
	require.Error(t, err)
	assert.Equal(t, PerPage, engine.SeenCount())

	fetcher.Err = nil
	res, err := engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)
	assert.Len(t, res.Products, 10)
	assert.False(t, res.Pagination.HasNextPage)
	assert.Equal(t, 30, engine.SeenCount())
}

func TestEngineErrorOnFirstPage(t *testing.T) {
	ctx := context.Background()
	fetcher := testutil.ProductFetcher(testutil.Products("Shoe", 5, 0))
	fetcher.Err = errors.New("boom")
	engine := NewProductEngine(fetcher, Options{})

	_, err := engine.FetchNext(ctx, "shoe")
	require.Error(t, err)

	fetcher.Err = nil
	res, err := engine.FetchNext(ctx, "shoe")
	require.NoError(t, err)
	assert.Len(t, res.Products, 5)
	assert.Equal(t, 2, fetcher.FirstCalls, "retry re-issues the first page")
}

func TestEngineDiscardsStaleResult(t *testing.T) {
	ctx := context.Background()
	catalog := append(testutil.Products("Shoe", 30, 0), testutil.Products("Boot", 30, 0)...)
	fetcher := testutil.ProductFetcher(catalog)
	engine := NewProductEngine(fetcher, Options{})

	fetcher.BeforeReturn = func() {
		fetcher.BeforeReturn = nil
		_, err := engine.FetchNext(ctx, "boot")
		require.NoError(t, err)
	}

	_, err := engine.FetchNext(ctx, "shoe")
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, "boot", engine.Term())
	assert.Equal(t, PerPage, engine.SeenCount())
}

func TestEngineEmptyFirstPage(t *testing.T) {
	ctx := context.Background()
	fetcher := testutil.ProductFetcher(testutil.Products("Shoe", 5, 0))
	engine := NewProductEngine(fetcher, Options{})

	res, err := engine.FetchNext(ctx, "sandal")
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.False(t, res.Pagination.HasNextPage)

	res, err = engine.FetchNext(ctx, "sandal")
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Equal(t, 0, fetcher.NextCalls)
}

func TestEngineCustomPageSize(t *testing.T) {
	ctx := context.Background()
	engine := NewProductEngine(testutil.ProductFetcher(testutil.Products("Shoe", 7, 0)), Options{PageSize: 5})

	res, err := engine.FetchNext(ctx, "")
	require.NoError(t, err)
	assert.Len(t, res.Products, 5)
	assert.True(t, res.Pagination.HasNextPage)
}

func TestCollectionEngine(t *testing.T) {
	ctx := context.Background()
	fetcher := &testutil.FakeFetcher[models.RawCollection]{
		Items: []models.RawCollection{{ID: "c1", Title: "Summer"}, {ID: "c2", Title: "Winter"}},
		IDOf:  func(c models.RawCollection) string { return c.ID },
	}
	engine := NewCollectionEngine(fetcher, Options{})

	res, err := engine.FetchNext(ctx, "")
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "Summer", res.Products[0].Name)
	assert.False(t, res.Pagination.HasNextPage)
}

func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
