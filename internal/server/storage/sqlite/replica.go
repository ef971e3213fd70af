package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/iudanet/savesync/internal/crdt"
	"github.com/iudanet/savesync/internal/models"
	"github.com/iudanet/savesync/internal/server/storage"
)

const selectEntries = `
	SELECT e.key, e.seq,
	       r.slot, r.device_id, r.checksum, r.vector_clock,
	       r.timestamp, r.payload, r.deleted
	FROM replica_entries e
	LEFT JOIN save_records r ON r.namespace = e.namespace AND r.key = e.key
`

// Load retrieves a replica entry by key
// Returns storage.ErrEntryNotFound if the key has never been written
func (s *Storage) Load(ctx context.Context, namespace, key string) (*models.ReplicaEntry, error) {
	query := selectEntries + `
		WHERE e.namespace = ? AND e.key = ?
		ORDER BY r.slot
	`

	entries, err := s.queryEntries(ctx, query, namespace, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if len(entries) == 0 {
		return nil, storage.ErrEntryNotFound
	}

	return entries[0], nil
}

// Save stores or replaces a replica entry and assigns it the next sequence
// of the namespace
func (s *Storage) Save(ctx context.Context, namespace string, entry *models.ReplicaEntry) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var seq uint64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO namespace_sequences (namespace, seq) VALUES (?, 1)
		ON CONFLICT (namespace) DO UPDATE SET seq = seq + 1
		RETURNING seq
	`, namespace).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO replica_entries (namespace, key, seq, in_conflict, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE
		SET seq = excluded.seq, in_conflict = excluded.in_conflict, updated_at = excluded.updated_at
	`, namespace, entry.Key, seq, boolToInt(entry.InConflict()), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to upsert entry: %w", err)
	}

	// Версии перезаписываются целиком
	if _, err := tx.ExecContext(ctx, `DELETE FROM save_records WHERE namespace = ? AND key = ?`, namespace, entry.Key); err != nil {
		return 0, fmt.Errorf("failed to delete old records: %w", err)
	}

	if entry.Current != nil {
		if err := insertRecord(ctx, tx, namespace, 0, entry.Current); err != nil {
			return 0, err
		}
	}
	for i, r := range entry.Conflict {
		if err := insertRecord(ctx, tx, namespace, i+1, r); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return seq, nil
}

// Scan returns up to limit entries with key > after in key order
func (s *Storage) Scan(ctx context.Context, namespace, after string, limit int) ([]*models.ReplicaEntry, error) {
	if limit <= 0 {
		limit = -1 // в SQLite отрицательный LIMIT означает "без ограничения"
	}

	query := selectEntries + `
		WHERE e.namespace = ? AND e.key IN (
			SELECT key FROM replica_entries
			WHERE namespace = ? AND key > ?
			ORDER BY key
			LIMIT ?
		)
		ORDER BY e.key, r.slot
	`

	entries, err := s.queryEntries(ctx, query, namespace, namespace, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}

	return entries, nil
}

// ChangedSince returns entries with sequence greater than seq in sequence order
func (s *Storage) ChangedSince(ctx context.Context, namespace string, seq uint64) ([]*models.ReplicaEntry, error) {
	query := selectEntries + `
		WHERE e.namespace = ? AND e.seq > ?
		ORDER BY e.seq, r.slot
	`

	entries, err := s.queryEntries(ctx, query, namespace, seq)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries changed since %d: %w", seq, err)
	}

	return entries, nil
}

// Namespaces returns all namespaces with at least one entry
func (s *Storage) Namespaces(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT namespace FROM replica_entries ORDER BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("failed to query namespaces: %w", err)
	}
	defer rows.Close()

	namespaces := []string{}
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("failed to scan namespace: %w", err)
		}
		namespaces = append(namespaces, ns)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return namespaces, nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, namespace string, slot int, r *models.SaveRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO save_records (
			namespace, key, slot, device_id, checksum,
			vector_clock, timestamp, payload, deleted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		namespace,
		r.Key,
		slot,
		r.DeviceID,
		r.Checksum.String(),
		r.Clock.Text(),
		r.Timestamp.Unix(),
		nonNil(r.Payload),
		boolToInt(r.Deleted),
	)
	if err != nil {
		return fmt.Errorf("failed to insert record (slot %d): %w", slot, err)
	}
	return nil
}

// queryEntries собирает записи реплики из строк, упорядоченных по ключу
// (или seq) и затем по slot
func (s *Storage) queryEntries(ctx context.Context, query string, args ...any) ([]*models.ReplicaEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.ReplicaEntry{}
	var current *models.ReplicaEntry

	for rows.Next() {
		var (
			key       string
			seq       uint64
			slot      sql.NullInt64
			deviceID  sql.NullString
			checksum  sql.NullString
			clockText sql.NullString
			timestamp sql.NullInt64
			payload   []byte
			deleted   sql.NullInt64
		)

		err := rows.Scan(&key, &seq, &slot, &deviceID, &checksum, &clockText, &timestamp, &payload, &deleted)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		if current == nil || current.Key != key {
			current = &models.ReplicaEntry{Key: key, Seq: seq}
			entries = append(entries, current)
		}
		if !slot.Valid {
			continue
		}

		clock, err := crdt.ParseClock(clockText.String)
		if err != nil {
			return nil, fmt.Errorf("stored clock for key %q: %w", key, err)
		}

		record := &models.SaveRecord{
			Key:       key,
			DeviceID:  deviceID.String,
			Checksum:  digest.Digest(checksum.String),
			Clock:     clock,
			Timestamp: unixToTime(timestamp.Int64),
			Payload:   payload,
			Deleted:   intToBool(int(deleted.Int64)),
		}

		if slot.Int64 == 0 {
			current.Current = record
		} else {
			current.Conflict = append(current.Conflict, record)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func unixToTime(timestamp int64) time.Time {
	return time.Unix(timestamp, 0).UTC()
}
