package pagination

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/transform"
)

// VariantEngine searches products but returns their variants. One product
// page can explode into any number of variants, so variants are buffered and
// further product pages are pulled until a full page can be served or the
// products run out.
type VariantEngine struct {
	fetcher Fetcher[models.RawProduct]
	opts    Options

	mu         sync.Mutex
	term       string
	session    string
	generation uint64
	version    uint64
	started    bool
	exhausted  bool
	seen       map[string]struct{}
	buffer     []models.Product
	lastPage   []models.RawProduct
}

// NewVariantEngine builds an expanding engine over a product fetcher.
func NewVariantEngine(fetcher Fetcher[models.RawProduct], opts Options) *VariantEngine {
	e := &VariantEngine{
		fetcher: fetcher,
		opts:    withDefaults(opts),
	}
	e.reset("")
	return e
}

func (e *VariantEngine) reset(term string) {
	e.term = term
	e.session = uuid.NewString()
	e.generation++
	e.version++
	e.started = false
	e.exhausted = false
	e.seen = make(map[string]struct{})
	e.buffer = nil
	e.lastPage = nil
}

// cursor is the working copy of the engine state for one FetchNext call. It
// is committed only if every product fetch of the call succeeds.
type cursor struct {
	started   bool
	exhausted bool
	seen      map[string]struct{}
	buffer    []models.Product
	lastPage  []models.RawProduct
}

// FetchNext returns the next page of variants for term.
func (e *VariantEngine) FetchNext(ctx context.Context, term string) (models.SearchResult, error) {
	e.mu.Lock()
	if term != e.term {
		e.reset(term)
	}
	generation, version := e.generation, e.version
	work := cursor{
		started:   e.started,
		exhausted: e.exhausted,
		seen:      make(map[string]struct{}, len(e.seen)),
		buffer:    append([]models.Product(nil), e.buffer...),
		lastPage:  e.lastPage,
	}
	for id := range e.seen {
		work.seen[id] = struct{}{}
	}
	session := e.session
	e.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"term": term, "session": session})

	for pass := 0; len(work.buffer) < e.opts.PageSize && !work.exhausted; pass++ {
		if pass >= e.opts.MaxBackfillPasses {
			log.WithField("passes", pass).Warn("variant backfill stopped at pass limit")
			break
		}
		if e.superseded(generation) {
			log.Debug("term changed during backfill")
			return models.SearchResult{}, ErrStale
		}

		var (
			page []models.RawProduct
			err  error
		)
		if !work.started {
			page, err = e.fetcher.FetchFirst(ctx, term, e.opts.PageSize)
		} else if len(work.lastPage) > 0 {
			page, err = e.fetcher.FetchNext(ctx, work.lastPage)
		}
		if err != nil {
			return models.SearchResult{}, errors.Wrapf(err, "fetch product page for %q", term)
		}

		work.started = true
		work.exhausted = len(page) < e.opts.PageSize
		if len(page) > 0 {
			work.lastPage = page
		}

		added := 0
		for _, product := range page {
			for _, v := range transform.Variants(product, e.opts.APIEndpoint) {
				if _, ok := work.seen[v.ID]; ok {
					continue
				}
				work.seen[v.ID] = struct{}{}
				work.buffer = append(work.buffer, v)
				added++
			}
		}
		log.WithFields(logrus.Fields{"pass": pass, "products": len(page), "variants": added}).Debug("exploded product page")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.version != version {
		log.Debug("discarding stale variant page")
		return models.SearchResult{}, ErrStale
	}

	n := min(e.opts.PageSize, len(work.buffer))
	products := append([]models.Product{}, work.buffer[:n]...)

	e.version++
	e.started = work.started
	e.exhausted = work.exhausted
	e.seen = work.seen
	e.buffer = work.buffer[n:]
	e.lastPage = work.lastPage

	return models.SearchResult{
		Pagination: models.Pagination{HasNextPage: !e.exhausted || len(e.buffer) > 0},
		Products:   products,
	}, nil
}

func (e *VariantEngine) superseded(generation uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation != generation
}

// Buffered returns how many exploded variants are waiting to be served.
func (e *VariantEngine) Buffered() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.buffer)
}
