package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pders01/skuref/internal/models"
)

// SaveSnapshot stores snap, assigning an id and timestamp when missing.
func (s *Store) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	data, err := json.Marshal(snap.Entries)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot entries")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, root_id, created_at, source, entry_count, entries) VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.RootID, snap.CreatedAt.UnixNano(), snap.Source, len(snap.Entries), data)
	return errors.Wrapf(err, "saving snapshot %s", snap.ID)
}

// LatestSnapshot returns the newest snapshot for rootID.
func (s *Store) LatestSnapshot(ctx context.Context, rootID string) (*models.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, root_id, created_at, source, entries FROM snapshots WHERE root_id = ? ORDER BY created_at DESC LIMIT 1`,
		rootID)
	snap, err := scanSnapshot(row)
	return snap, errors.Wrapf(err, "loading snapshot for %s", rootID)
}

// LoadSnapshot returns the snapshot with the given id.
func (s *Store) LoadSnapshot(ctx context.Context, id string) (*models.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, root_id, created_at, source, entries FROM snapshots WHERE id = ?`, id)
	snap, err := scanSnapshot(row)
	return snap, errors.Wrapf(err, "loading snapshot %s", id)
}

func scanSnapshot(row *sql.Row) (*models.Snapshot, error) {
	var (
		snap    models.Snapshot
		created int64
		data    []byte
	)
	err := row.Scan(&snap.ID, &snap.RootID, &created, &snap.Source, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, &snap.Entries); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot entries")
	}
	snap.CreatedAt = time.Unix(0, created)
	return &snap, nil
}

// ListSnapshots returns snapshots created at or after since, newest first.
// A zero since lists everything.
func (s *Store) ListSnapshots(ctx context.Context, since time.Time) ([]models.SnapshotInfo, error) {
	var from int64
	if !since.IsZero() {
		from = since.UnixNano()
	}
	return s.queryInfos(ctx,
		`SELECT id, root_id, created_at, source, entry_count FROM snapshots WHERE created_at >= ? ORDER BY created_at DESC`,
		from)
}

// PruneSnapshots removes snapshots created before cutoff and returns them.
// With dryRun set nothing is removed.
func (s *Store) PruneSnapshots(ctx context.Context, cutoff time.Time, dryRun bool) ([]models.SnapshotInfo, error) {
	old, err := s.queryInfos(ctx,
		`SELECT id, root_id, created_at, source, entry_count FROM snapshots WHERE created_at < ? ORDER BY created_at`,
		cutoff.UnixNano())
	if err != nil || dryRun || len(old) == 0 {
		return old, err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE created_at < ?`, cutoff.UnixNano()); err != nil {
		return nil, errors.Wrap(err, "pruning snapshots")
	}
	return old, nil
}

// DeleteSnapshot removes one snapshot.
func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "deleting snapshot %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrNotFound, "snapshot %s", id)
	}
	return nil
}

func (s *Store) queryInfos(ctx context.Context, query string, args ...any) ([]models.SnapshotInfo, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying snapshots")
	}
	defer rows.Close()

	var infos []models.SnapshotInfo
	for rows.Next() {
		var (
			info    models.SnapshotInfo
			created int64
		)
		if err := rows.Scan(&info.ID, &info.RootID, &created, &info.Source, &info.EntryCount); err != nil {
			return nil, errors.Wrap(err, "scanning snapshot row")
		}
		info.CreatedAt = time.Unix(0, created)
		infos = append(infos, info)
	}
	return infos, errors.Wrap(rows.Err(), "iterating snapshots")
}
