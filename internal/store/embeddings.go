package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/pders01/skuref/internal/embeddings"
)

// PutEmbedding caches the vector of text under model.
func (s *Store) PutEmbedding(ctx context.Context, model, text string, vec []float64) error {
	data, err := embeddings.Encode(vec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO embeddings (model, text, vector) VALUES (?, ?, ?)`,
		model, text, data)
	return errors.Wrap(err, "caching embedding")
}

// GetEmbedding returns the cached vector of text under model.
func (s *Store) GetEmbedding(ctx context.Context, model, text string) ([]float64, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT vector FROM embeddings WHERE model = ? AND text = ?`, model, text).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading embedding")
	}
	return embeddings.Decode(data)
}
