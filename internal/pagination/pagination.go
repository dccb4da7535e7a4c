// Package pagination implements incremental, de-duplicating search over a
// cursor-paged storefront API.
//
// The storefront offers no total count, so HasNextPage is a heuristic: a page
// that came back full is assumed to have a successor.
//
// Engines are safe for concurrent use, but callers should still issue one
// FetchNext at a time per search box. Locks are never held across network
// calls; a result that arrives after the term changed, or after another call
// for the same term already merged, is discarded and reported as ErrStale.
package pagination

import (
	"context"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
)

// PerPage is the default page size requested from the storefront.
const PerPage = 20

// DefaultMaxBackfillPasses bounds how many product pages a single variant
// fetch may pull while trying to fill a page.
const DefaultMaxBackfillPasses = 25

// ErrStale is returned when a fetch result was discarded on arrival.
var ErrStale = errors.New("search result superseded")

// Fetcher is the storefront collaborator. FetchFirst requests the first page
// for a term; FetchNext continues after the given page using the cursor
// carried by its records.
type Fetcher[T any] interface {
	FetchFirst(ctx context.Context, term string, first int) ([]T, error)
	FetchNext(ctx context.Context, after []T) ([]T, error)
}

// Options tunes an engine. Zero fields take the defaults.
type Options struct {
	PageSize          int
	MaxBackfillPasses int
	APIEndpoint       string
}

var defaultOptions = Options{
	PageSize:          PerPage,
	MaxBackfillPasses: DefaultMaxBackfillPasses,
}

func withDefaults(opts Options) Options {
	if err := mergo.Merge(&opts, defaultOptions); err != nil {
		return defaultOptions
	}
	return opts
}
