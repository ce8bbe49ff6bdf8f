package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
)

// Registers are the fixed-key auxiliary snapshots: the saved counting
// entries, the daily records of the monthly sheet, the prior-month
// transfer and the sheet header. Unlike Store they are read through on
// every call, so there is no lifecycle to manage.
type Registers struct {
	kv BlobStore
}

func NewRegisters(kv BlobStore) *Registers {
	return &Registers{kv: kv}
}

// SavedEntries returns every saved counting entry.
func (r *Registers) SavedEntries(ctx context.Context) ([]core.SavedEntry, error) {
	return loadSnapshot[[]core.SavedEntry](ctx, r.kv, keySavedEntries)
}

// AddSavedEntry assigns an id, appends and persists the full list.
func (r *Registers) AddSavedEntry(ctx context.Context, e core.SavedEntry) (core.SavedEntry, error) {
	e.ID = uuid.NewString()
	if err := e.Validate(); err != nil {
		return core.SavedEntry{}, err
	}

	entries, err := r.SavedEntries(ctx)
	if err != nil {
		return core.SavedEntry{}, err
	}
	entries = append(entries, e)
	if err := saveSnapshot(ctx, r.kv, keySavedEntries, entries); err != nil {
		return core.SavedEntry{}, err
	}
	return e, nil
}

// DeleteSavedEntry removes an entry by id; unknown ids are a no-op.
func (r *Registers) DeleteSavedEntry(ctx context.Context, id string) error {
	entries, err := r.SavedEntries(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries = append(entries[:i], entries[i+1:]...)
		return saveSnapshot(ctx, r.kv, keySavedEntries, entries)
	}
	return nil
}

// DailyRecords returns the raw daily records of the monthly sheet.
func (r *Registers) DailyRecords(ctx context.Context) ([]core.DailyRecord, error) {
	return loadSnapshot[[]core.DailyRecord](ctx, r.kv, keyDailyRecords)
}

// AddDailyRecord assigns an id, appends and persists.
func (r *Registers) AddDailyRecord(ctx context.Context, rec core.DailyRecord) (core.DailyRecord, error) {
	rec.ID = uuid.NewString()
	if err := rec.Validate(); err != nil {
		return core.DailyRecord{}, err
	}

	records, err := r.DailyRecords(ctx)
	if err != nil {
		return core.DailyRecord{}, err
	}
	records = append(records, rec)
	if err := saveSnapshot(ctx, r.kv, keyDailyRecords, records); err != nil {
		return core.DailyRecord{}, err
	}
	return rec, nil
}

// DeleteDailyRecord removes a record by id; unknown ids are a no-op.
func (r *Registers) DeleteDailyRecord(ctx context.Context, id string) error {
	records, err := r.DailyRecords(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID != id {
			continue
		}
		records = append(records[:i], records[i+1:]...)
		return saveSnapshot(ctx, r.kv, keyDailyRecords, records)
	}
	return nil
}

// MergedDailyRecords folds the saved counting entries into the daily
// records, one record per calendar date. Explicit records win over records
// derived from counting entries on the same date.
func (r *Registers) MergedDailyRecords(ctx context.Context) ([]core.DailyRecord, error) {
	records, err := r.DailyRecords(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := r.SavedEntries(ctx)
	if err != nil {
		return nil, err
	}

	merged := make([]core.DailyRecord, 0, len(records)+len(entries))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.Date.String()] {
			continue
		}
		seen[rec.Date.String()] = true
		merged = append(merged, rec)
	}
	for _, e := range entries {
		if seen[e.Date.String()] {
			continue
		}
		seen[e.Date.String()] = true
		merged = append(merged, core.DailyRecord{
			ID:           "contagem-" + e.ID,
			Date:         e.Date,
			CashAmount:   e.Total,
			Responsible1: e.Responsible1,
			Responsible2: e.Responsible2,
			Responsible3: e.Responsible3,
		})
	}
	return merged, nil
}

// PriorTransfer returns the carried-over amount from the previous month.
// Absent data is zero.
func (r *Registers) PriorTransfer(ctx context.Context) (core.Money, error) {
	return loadSnapshot[core.Money](ctx, r.kv, keyPriorTransfer)
}

// SetPriorTransfer persists the carried-over amount.
func (r *Registers) SetPriorTransfer(ctx context.Context, amount core.Money) error {
	if amount.Cents < 0 {
		return core.ErrInvalidAmount
	}
	return saveSnapshot(ctx, r.kv, keyPriorTransfer, amount)
}

// MonthlySheet returns the sheet header, zero-valued when never saved.
func (r *Registers) MonthlySheet(ctx context.Context) (core.MonthlySheet, error) {
	return loadSnapshot[core.MonthlySheet](ctx, r.kv, keyMonthlySheet)
}

// SetMonthlySheet persists the sheet header.
func (r *Registers) SetMonthlySheet(ctx context.Context, sheet core.MonthlySheet) error {
	if sheet.Month < 1 || sheet.Month > 12 {
		return fmt.Errorf("invalid sheet month %d", sheet.Month)
	}
	return saveSnapshot(ctx, r.kv, keyMonthlySheet, sheet)
}
