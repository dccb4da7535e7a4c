package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// SaveSelection replaces the saved entity ids for rootID.
func (s *Store) SaveSelection(ctx context.Context, rootID string, entityIDs []string) error {
	if entityIDs == nil {
		entityIDs = []string{}
	}
	data, err := json.Marshal(entityIDs)
	if err != nil {
		return errors.Wrap(err, "encoding selection")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO selections (root_id, entity_ids, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(root_id) DO UPDATE SET entity_ids = excluded.entity_ids, updated_at = excluded.updated_at`,
		rootID, string(data), time.Now().UnixNano())
	return errors.Wrapf(err, "saving selection for %s", rootID)
}

// LoadSelection returns the saved entity ids for rootID and when they were
// saved.
func (s *Store) LoadSelection(ctx context.Context, rootID string) ([]string, time.Time, error) {
	var (
		data    string
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT entity_ids, updated_at FROM selections WHERE root_id = ?`, rootID).Scan(&data, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, errors.Wrapf(ErrNotFound, "selection for %s", rootID)
	}
	if err != nil {
		return nil, time.Time{}, errors.Wrapf(err, "loading selection for %s", rootID)
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "decoding selection")
	}
	return ids, time.Unix(0, updated), nil
}
