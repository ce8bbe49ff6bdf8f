// Package ledger holds the authoritative in-memory collections for an
// owner and keeps a persisted mirror of every mutation.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Ramon98292347/financeiro-igreja/internal/storage"
)

// BlobStore is the outbound port for snapshot persistence. The SQLite
// store and the in-memory store both implement it.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Persisted key layout. Owner-scoped collections carry the owner id in the
// key; auxiliary registers use fixed names.
const (
	keySavedEntries  = "entradasSalvas"
	keyDailyRecords  = "registrosDiarios"
	keyPriorTransfer = "transferenciaMesAnterior"
	keyMonthlySheet  = "monthlySheet"
)

func transactionsKey(ownerID string) string { return "transactions_" + ownerID }
func cashCountsKey(ownerID string) string   { return "cashCounts_" + ownerID }
func categoriesKey(ownerID string) string   { return "categories_" + ownerID }

// loadSnapshot hydrates a value from its persisted blob. An absent key or a
// corrupt blob both yield the zero value: stored data is never a reason to
// refuse to start.
func loadSnapshot[T any](ctx context.Context, kv BlobStore, key string) (T, error) {
	var out T
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.WarnContext(ctx, "Discarding corrupt snapshot", "key", key, "error", err)
		var zero T
		return zero, nil
	}
	return out, nil
}

// saveSnapshot re-serializes the full value under its key.
func saveSnapshot[T any](ctx context.Context, kv BlobStore, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return kv.Put(ctx, key, raw)
}
