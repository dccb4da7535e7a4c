// Package testutil provides fakes and fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/transform"
)

// FakeFetcher serves pages of an in-memory catalog. It records its calls and
// can be told to fail or to overlap consecutive pages.
type FakeFetcher[T any] struct {
	Items []T
	IDOf  func(T) string
	Match func(item T, term string) bool

	// Overlap makes each next page start this many items before the end of
	// the previous one, as a storefront does when the catalog shifts.
	Overlap int
	// Err, when set, is returned by every call.
	Err error
	// BeforeReturn runs before a successful page is returned.
	BeforeReturn func()

	mu         sync.Mutex
	term       string
	FirstCalls int
	NextCalls  int
	Terms      []string
}

func (f *FakeFetcher[T]) filtered(term string) []T {
	var out []T
	for _, item := range f.Items {
		if f.Match == nil || f.Match(item, term) {
			out = append(out, item)
		}
	}
	return out
}

// FetchFirst implements pagination.Fetcher.
func (f *FakeFetcher[T]) FetchFirst(ctx context.Context, term string, first int) ([]T, error) {
	f.mu.Lock()
	f.FirstCalls++
	f.Terms = append(f.Terms, term)
	f.term = term
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	items := f.filtered(term)
	page := items[:min(first, len(items))]
	return f.done(page), nil
}

// FetchNext implements pagination.Fetcher. Page size is the length of after.
func (f *FakeFetcher[T]) FetchNext(ctx context.Context, after []T) ([]T, error) {
	f.mu.Lock()
	f.NextCalls++
	term := f.term
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	if len(after) == 0 {
		return nil, fmt.Errorf("no cursor to continue from")
	}

	items := f.filtered(term)
	lastID := f.IDOf(after[len(after)-1])
	start := -1
	for i, item := range items {
		if f.IDOf(item) == lastID {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("unknown cursor %q", lastID)
	}
	start = max(0, start-f.Overlap)

	end := min(start+len(after), len(items))
	if start >= end {
		return []T{}, nil
	}
	return f.done(items[start:end]), nil
}

func (f *FakeFetcher[T]) done(page []T) []T {
	if f.BeforeReturn != nil {
		f.BeforeReturn()
	}
	return append([]T(nil), page...)
}

// Products builds n products titled "<prefix> <i>" with the given number of
// variants each.
func Products(prefix string, n, variants int) []models.RawProduct {
	out := make([]models.RawProduct, 0, n)
	for i := 1; i <= n; i++ {
		id := transform.EncodeID(fmt.Sprintf("gid://shopify/Product/%s%d", strings.ToLower(prefix), i))
		p := models.RawProduct{
			ID:    id,
			Title: fmt.Sprintf("%s %d", prefix, i),
		}
		for v := 1; v <= variants; v++ {
			p.Variants = append(p.Variants, models.RawVariant{
				ID:    transform.EncodeID(fmt.Sprintf("gid://shopify/ProductVariant/%s%d-%d", strings.ToLower(prefix), i, v)),
				Title: fmt.Sprintf("V%d", v),
			})
		}
		out = append(out, p)
	}
	return out
}

// ProductFetcher wraps a catalog in a FakeFetcher matching on title.
func ProductFetcher(items []models.RawProduct) *FakeFetcher[models.RawProduct] {
	return &FakeFetcher[models.RawProduct]{
		Items: items,
		IDOf:  func(p models.RawProduct) string { return p.ID },
		Match: func(p models.RawProduct, term string) bool {
			return strings.Contains(strings.ToLower(p.Title), strings.ToLower(term))
		},
	}
}
