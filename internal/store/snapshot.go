package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on the snapshots table.
// Data is kept as a JSON document.
type snapshotRepo struct {
	db *sql.DB
}

type snapshotRow struct {
	ID        int64  `sql:"id"`
	Sequence  int64  `sql:"sequence"`
	Timestamp int64  `sql:"timestamp"`
	Data      string `sql:"data"`
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = now()
	}

	query, args := builder().Insert(tableSnapshots).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, toMillis(ts), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	s := selectFrom(tableSnapshots, QueryOpts{Limit: 1}, "id", "sequence", "timestamp", "data").
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id"))

	var rows []snapshotRow
	if err := scanSelector(ctx, r.db, s, &rows); err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var data SnapshotData
	if err := json.Unmarshal([]byte(rows[0].Data), &data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &Snapshot{
		ID:        int(rows[0].ID),
		Sequence:  rows[0].Sequence,
		Timestamp: fromMillis(rows[0].Timestamp),
		Data:      data,
	}, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the keep window.
	s := selectFrom(tableSnapshots, QueryOpts{Limit: 1}, "id", "sequence", "timestamp", "data").
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Offset(keep)

	var rows []snapshotRow
	if err := scanSelector(ctx, r.db, s, &rows); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if len(rows) == 0 {
		return nil // fewer than keep snapshots exist
	}

	query, args := builder().Delete(tableSnapshots).
		Where(entsql.Or(
			entsql.LT("timestamp", rows[0].Timestamp),
			entsql.And(entsql.EQ("timestamp", rows[0].Timestamp), entsql.LTE("id", rows[0].ID)),
		)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
