package pagination

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pders01/skuref/internal/models"
)

// Engine searches a flat record type (products or collections).
type Engine[T any] struct {
	fetcher   Fetcher[T]
	idOf      func(T) string
	transform func(T) models.Product
	opts      Options

	mu         sync.Mutex
	term       string
	session    string
	version    uint64
	started    bool
	seen       map[string]struct{}
	retained   []T
	lastPage   []T
}

// NewEngine builds a flat engine. idOf extracts the de-duplication key and
// transform produces the preview record.
func NewEngine[T any](fetcher Fetcher[T], idOf func(T) string, transform func(T) models.Product, opts Options) *Engine[T] {
	e := &Engine[T]{
		fetcher:   fetcher,
		idOf:      idOf,
		transform: transform,
		opts:      withDefaults(opts),
	}
	e.reset("")
	return e
}

// reset discards all state for a new term. Caller holds mu.
func (e *Engine[T]) reset(term string) {
	e.term = term
	e.session = uuid.NewString()
	e.version++
	e.started = false
	e.seen = make(map[string]struct{})
	e.retained = nil
	e.lastPage = nil
}

// FetchNext returns the next page of records not yet returned for term.
// A different term than the previous call starts over from page one.
// On error the engine state is left untouched so the call can be retried.
func (e *Engine[T]) FetchNext(ctx context.Context, term string) (models.SearchResult, error) {
	e.mu.Lock()
	if term != e.term {
		e.reset(term)
	}
	version := e.version
	started := e.started
	lastPage := e.lastPage
	session := e.session
	e.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"term": term, "session": session})

	if started && len(lastPage) == 0 {
		// The first page was empty; there is nothing to continue from.
		return models.SearchResult{Products: []models.Product{}}, nil
	}

	var (
		page []T
		err  error
	)
	if !started {
		log.Debug("fetching first page")
		page, err = e.fetcher.FetchFirst(ctx, term, e.opts.PageSize)
	} else {
		log.Debug("fetching next page")
		page, err = e.fetcher.FetchNext(ctx, lastPage)
	}
	if err != nil {
		return models.SearchResult{}, errors.Wrapf(err, "fetch page for %q", term)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.version != version {
		log.Debug("discarding stale page")
		return models.SearchResult{}, ErrStale
	}

	products := make([]models.Product, 0, len(page))
	for _, item := range page {
		id := e.idOf(item)
		if _, ok := e.seen[id]; ok {
			continue
		}
		e.seen[id] = struct{}{}
		e.retained = append(e.retained, item)
		products = append(products, e.transform(item))
	}

	e.version++
	e.started = true
	if len(page) > 0 {
		e.lastPage = page
	}

	log.WithFields(logrus.Fields{"page": len(page), "kept": len(products)}).Debug("merged page")

	return models.SearchResult{
		Pagination: models.Pagination{HasNextPage: len(page) == e.opts.PageSize},
		Products:   products,
	}, nil
}

// Term returns the term the engine currently holds state for.
func (e *Engine[T]) Term() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.term
}

// SeenCount returns how many distinct records were returned for the term.
func (e *Engine[T]) SeenCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.seen)
}

// Retained returns a copy of every raw record kept for the current term.
func (e *Engine[T]) Retained() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]T(nil), e.retained...)
}
