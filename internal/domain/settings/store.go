package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"timeclock/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context, key string) (Entry, error) {
	var raw []byte
	entry := Entry{Key: key}
	err := s.DB.QueryRow(ctx, `SELECT value, updated_at FROM system_config WHERE key = $1`, key).Scan(&raw, &entry.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotSet
	}
	if err != nil {
		return Entry{}, err
	}
	entry.Value, err = Decode(key, raw)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Store) Upsert(ctx context.Context, key string, value Value) (Entry, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Key: key, Value: value}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO system_config (key, value, updated_at)
    VALUES ($1, $2, now())
    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
    RETURNING updated_at
  `, key, raw).Scan(&entry.UpdatedAt)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns every stored entry that still decodes under the current
// registry. Rows that do not are logged and skipped.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `SELECT key, value, updated_at FROM system_config ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var raw []byte
		if err := rows.Scan(&entry.Key, &raw, &entry.UpdatedAt); err != nil {
			return nil, err
		}
		value, err := Decode(entry.Key, raw)
		if err != nil {
			slog.Warn("skipping stored setting", "key", entry.Key, "err", err)
			continue
		}
		entry.Value = value
		out = append(out, entry)
	}
	return out, rows.Err()
}
