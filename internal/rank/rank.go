// Package rank reorders a page of preview records by how close their names
// are to the search term in embedding space. It only reorders: records are
// never added, dropped or changed.
package rank

import (
	"context"
	"slices"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pders01/skuref/internal/embeddings"
	"github.com/pders01/skuref/internal/models"
	"github.com/pders01/skuref/internal/ollama"
)

// Cache stores embeddings per model and text. A miss must return an error.
type Cache interface {
	GetEmbedding(ctx context.Context, model, text string) ([]float64, error)
	PutEmbedding(ctx context.Context, model, text string, vec []float64) error
}

// Ranker scores records with an Embedder. Cache is optional.
type Ranker struct {
	Embedder ollama.Embedder
	Cache    Cache
}

// New returns a Ranker.
func New(embedder ollama.Embedder, cache Cache) *Ranker {
	return &Ranker{Embedder: embedder, Cache: cache}
}

// Rerank returns products sorted by descending similarity to term. Ties and
// records without a name keep their relative order.
func (r *Ranker) Rerank(ctx context.Context, term string, products []models.Product) ([]models.Product, error) {
	out := make([]models.Product, len(products))
	copy(out, products)
	if term == "" || len(products) < 2 {
		return out, nil
	}

	texts := []string{term}
	for _, p := range products {
		if p.Name != "" {
			texts = append(texts, p.Name)
		}
	}

	vecs, err := r.vectors(ctx, texts)
	if err != nil {
		return nil, err
	}

	query := vecs[term]
	scores := make([]float64, len(out))
	for i, p := range out {
		scores[i] = -2
		if vec, ok := vecs[p.Name]; ok && p.Name != "" {
			scores[i] = embeddings.Scores(query, [][]float64{vec})[0]
		}
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	ranked := make([]models.Product, len(out))
	for i, j := range idx {
		ranked[i] = out[j]
	}
	return ranked, nil
}

// vectors resolves every distinct text through the cache, embedding the
// misses in one request.
func (r *Ranker) vectors(ctx context.Context, texts []string) (map[string][]float64, error) {
	model := r.Embedder.Model()
	vecs := make(map[string][]float64, len(texts))

	var misses []string
	for _, text := range texts {
		if _, ok := vecs[text]; ok || slices.Contains(misses, text) {
			continue
		}
		if r.Cache != nil {
			if vec, err := r.Cache.GetEmbedding(ctx, model, text); err == nil {
				vecs[text] = vec
				continue
			}
		}
		misses = append(misses, text)
	}

	if len(misses) == 0 {
		return vecs, nil
	}

	embedded, err := r.Embedder.Embed(ctx, misses)
	if err != nil {
		return nil, errors.Wrap(err, "embedding search results")
	}

	for i, text := range misses {
		vecs[text] = embedded[i]
		if r.Cache == nil {
			continue
		}
		if err := r.Cache.PutEmbedding(ctx, model, text, embedded[i]); err != nil {
			logrus.WithError(err).WithField("text", text).Debug("failed to cache embedding")
		}
	}

	logrus.WithFields(logrus.Fields{"texts": len(texts), "embedded": len(misses)}).Debug("resolved embeddings")
	return vecs, nil
}
