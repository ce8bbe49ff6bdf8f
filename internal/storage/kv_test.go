package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tesouraria.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetMissingKeyIsNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), "transactions_u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	blob := []byte(`[{"id":"1","type":"entrada","amount":100.00,"date":"2024-03-05","userId":"u1"}]`)
	if err := store.Put(ctx, "transactions_u1", blob); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "transactions_u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("round trip changed blob: %s", got)
	}
}

func TestPutOverwritesFullValue(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "entradasSalvas", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "entradasSalvas", []byte(`[]`)); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := store.Get(ctx, "entradasSalvas")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected full overwrite, got %s", got)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "monthlySheet", []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "monthlySheet"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "monthlySheet"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := store.Get(ctx, "monthlySheet"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"registrosDiarios", "cashCounts_u1", "transactions_u1"} {
		if err := store.Put(ctx, k, []byte(`[]`)); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"cashCounts_u1", "registrosDiarios", "transactions_u1"}
	if len(keys) != len(want) {
		t.Fatalf("got %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}
