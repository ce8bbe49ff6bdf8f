package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
)

// ErrNotLoaded reports use of a store before Load gave it an owner.
var ErrNotLoaded = errors.New("ledger store has no owner loaded")

// DefaultCategories seed a fresh owner's expense categories.
var DefaultCategories = []core.ExpenseCategory{
	{Name: "Alimentação", Color: "#FF6F00"},
	{Name: "Transporte", Color: "#4CAF50"},
	{Name: "Utilidades", Color: "#2196F3"},
	{Name: "Educação", Color: "#9C27B0"},
}

// Store holds one owner's collections. Every mutation immediately
// re-serializes the affected collection through the BlobStore, so reads
// after a crash see exactly what the last successful mutation saw.
type Store struct {
	mu      sync.Mutex
	kv      BlobStore
	ownerID string
	loaded  bool

	transactions []core.Transaction
	cashCounts   []core.CashCount
	categories   []core.ExpenseCategory
}

func NewStore(kv BlobStore) *Store {
	return &Store{kv: kv}
}

// Load hydrates the collections for an owner. Absent snapshots yield empty
// collections; a fresh owner gets the default expense categories.
func (s *Store) Load(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return errors.New("owner id is required")
	}

	txs, err := loadSnapshot[[]core.Transaction](ctx, s.kv, transactionsKey(ownerID))
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	counts, err := loadSnapshot[[]core.CashCount](ctx, s.kv, cashCountsKey(ownerID))
	if err != nil {
		return fmt.Errorf("load cash counts: %w", err)
	}
	cats, err := loadSnapshot[[]core.ExpenseCategory](ctx, s.kv, categoriesKey(ownerID))
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if len(cats) == 0 {
		cats = make([]core.ExpenseCategory, 0, len(DefaultCategories))
		for _, c := range DefaultCategories {
			c.ID = uuid.NewString()
			c.OwnerID = ownerID
			cats = append(cats, c)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = ownerID
	s.loaded = true
	s.transactions = txs
	s.cashCounts = counts
	s.categories = cats

	slog.InfoContext(ctx, "Ledger loaded",
		"owner", ownerID,
		"transactions", len(txs),
		"cash_counts", len(counts),
		"categories", len(cats))
	return nil
}

// Clear drops the in-memory collections and the owner binding. Persisted
// snapshots are untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = ""
	s.loaded = false
	s.transactions = nil
	s.cashCounts = nil
	s.categories = nil
}

func (s *Store) OwnerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownerID
}

// TransactionPatch carries the mutable fields of a transaction. Nil fields
// keep their current value.
type TransactionPatch struct {
	Type        *core.TransactionType
	Category    *string
	Amount      *core.Money
	Description *string
	Date        *core.Date
}

// AddTransaction assigns a fresh id, appends and persists.
func (s *Store) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return core.Transaction{}, ErrNotLoaded
	}

	tx.ID = uuid.NewString()
	tx.OwnerID = s.ownerID
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.transactions = append(s.transactions, tx)
	if err := s.persistTransactions(ctx); err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"owner", s.ownerID,
		"type", tx.Type,
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)
	return tx, nil
}

// UpdateTransaction merges the patch into the matching transaction and
// persists. An unknown id is a silent no-op.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		merged := s.transactions[i]
		if patch.Type != nil {
			merged.Type = *patch.Type
		}
		if patch.Category != nil {
			merged.Category = *patch.Category
		}
		if patch.Amount != nil {
			merged.Amount = *patch.Amount
		}
		if patch.Description != nil {
			merged.Description = *patch.Description
		}
		if patch.Date != nil {
			merged.Date = *patch.Date
		}
		if err := merged.Validate(); err != nil {
			return err
		}
		s.transactions[i] = merged
		return s.persistTransactions(ctx)
	}

	slog.DebugContext(ctx, "Update for unknown transaction ignored", "id", id, "owner", s.ownerID)
	return nil
}

// DeleteTransaction removes the matching entry and persists. An unknown id
// is a silent no-op.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
		return s.persistTransactions(ctx)
	}
	return nil
}

// SaveCashCount assigns an id, appends and persists. Sessions are never
// updated afterwards, only added or removed.
func (s *Store) SaveCashCount(ctx context.Context, cc core.CashCount) (core.CashCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return core.CashCount{}, ErrNotLoaded
	}

	cc.ID = uuid.NewString()
	cc.OwnerID = s.ownerID
	if err := cc.Validate(); err != nil {
		return core.CashCount{}, err
	}

	s.cashCounts = append(s.cashCounts, cc)
	if err := saveSnapshot(ctx, s.kv, cashCountsKey(s.ownerID), s.cashCounts); err != nil {
		return core.CashCount{}, err
	}

	slog.InfoContext(ctx, "Cash count saved",
		"id", cc.ID,
		"owner", s.ownerID,
		"date", cc.Date.String(),
		"total_cents", cc.Total.Cents)
	return cc, nil
}

// DeleteCashCount removes a session by id; unknown ids are a no-op.
func (s *Store) DeleteCashCount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	for i := range s.cashCounts {
		if s.cashCounts[i].ID != id {
			continue
		}
		s.cashCounts = append(s.cashCounts[:i], s.cashCounts[i+1:]...)
		return saveSnapshot(ctx, s.kv, cashCountsKey(s.ownerID), s.cashCounts)
	}
	return nil
}

// AddCategory appends a category and persists the category list.
func (s *Store) AddCategory(ctx context.Context, c core.ExpenseCategory) (core.ExpenseCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return core.ExpenseCategory{}, ErrNotLoaded
	}

	c.ID = uuid.NewString()
	c.OwnerID = s.ownerID
	if err := c.Validate(); err != nil {
		return core.ExpenseCategory{}, err
	}
	s.categories = append(s.categories, c)
	if err := saveSnapshot(ctx, s.kv, categoriesKey(s.ownerID), s.categories); err != nil {
		return core.ExpenseCategory{}, err
	}
	return c, nil
}

// UpdateCategory replaces name and color of the matching category; unknown
// ids are a no-op.
func (s *Store) UpdateCategory(ctx context.Context, id, name, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		merged := s.categories[i]
		if name != "" {
			merged.Name = name
		}
		if color != "" {
			merged.Color = color
		}
		if err := merged.Validate(); err != nil {
			return err
		}
		s.categories[i] = merged
		return saveSnapshot(ctx, s.kv, categoriesKey(s.ownerID), s.categories)
	}
	return nil
}

// DeleteCategory removes a category; unknown ids are a no-op.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		s.categories = append(s.categories[:i], s.categories[i+1:]...)
		return saveSnapshot(ctx, s.kv, categoriesKey(s.ownerID), s.categories)
	}
	return nil
}

// Transactions returns a copy of the owner's transactions.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// CashCounts returns a copy of the owner's counting sessions.
func (s *Store) CashCounts() []core.CashCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.CashCount, len(s.cashCounts))
	copy(out, s.cashCounts)
	return out
}

// Categories returns a copy of the owner's expense categories.
func (s *Store) Categories() []core.ExpenseCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ExpenseCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) persistTransactions(ctx context.Context) error {
	return saveSnapshot(ctx, s.kv, transactionsKey(s.ownerID), s.transactions)
}
