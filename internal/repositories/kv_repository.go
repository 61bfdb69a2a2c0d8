package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Logical namespaces within the kv_entries table. Each component owns
// exactly one.
const (
	NamespaceSettings   = "settings"
	NamespaceDevices    = "devices"
	NamespaceWebAuthn   = "webauthn"
	NamespaceRateLimits = "rate-limits"
)

// Entry is a single namespaced key/value pair.
type Entry struct {
	Key   string
	Value string
}

// Store is the key-value boundary every stateful component runs on:
// get/set/delete by key within a namespace, plus List for the cleanup
// sweeps. No atomicity is guaranteed across a read-then-write pair;
// callers that read-modify-write accept last-write-wins races.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	List(ctx context.Context, namespace string) ([]Entry, error)
}

type kvStore struct {
	db DB
}

// NewKVStore returns a Store backed by the kv_entries table.
func NewKVStore(db DB) Store {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	query := `SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`
	var value string
	err := s.db.QueryRow(ctx, query, namespace, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *kvStore) Set(ctx context.Context, namespace, key, value string) error {
	query := `
        INSERT INTO kv_entries (namespace, key, value, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (namespace, key) DO UPDATE
        SET value = EXCLUDED.value, updated_at = NOW()
    `
	_, err := s.db.Exec(ctx, query, namespace, key, value)
	return err
}

func (s *kvStore) Delete(ctx context.Context, namespace, key string) error {
	query := `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`
	_, err := s.db.Exec(ctx, query, namespace, key)
	return err
}

func (s *kvStore) List(ctx context.Context, namespace string) ([]Entry, error) {
	query := `SELECT key, value FROM kv_entries WHERE namespace = $1 ORDER BY key`
	rows, err := s.db.Query(ctx, query, namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
