package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ramon98292347/financeiro-igreja/internal/amqp"
	"github.com/Ramon98292347/financeiro-igreja/internal/core"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger"
	"github.com/Ramon98292347/financeiro-igreja/internal/storage"
)

// ReportService builds the treasury reports and orchestrates month closing
// across the ledger and AMQP.
type ReportService struct {
	ledgers    *ledger.Manager
	registers  *ledger.Registers
	kv         ledger.BlobStore
	amqpClient *amqp.Client
	now        func() time.Time
}

func NewReportService(ledgers *ledger.Manager, registers *ledger.Registers, kv ledger.BlobStore, amqpClient *amqp.Client) *ReportService {
	return &ReportService{
		ledgers:    ledgers,
		registers:  registers,
		kv:         kv,
		amqpClient: amqpClient,
		now:        time.Now,
	}
}

func monthlyReportKey(year, month int) string {
	return fmt.Sprintf("monthly-report-%d-%d", year, month)
}

// Summary returns the filtered totals and category breakdown for an owner.
// Entry totals include the daily register income of the same window.
func (s *ReportService) Summary(ctx context.Context, ownerID string, period core.Period, category string) (core.SummaryReport, error) {
	if err := period.Validate(); err != nil {
		return core.SummaryReport{}, err
	}
	if category == "" {
		category = "all"
	}

	store, err := s.ledgers.Open(ctx, ownerID)
	if err != nil {
		return core.SummaryReport{}, fmt.Errorf("open ledger: %w", err)
	}

	now := s.now()
	txs := core.FilterByCategory(core.FilterByPeriod(store.Transactions(), period, now), category)

	report := core.SummaryReport{
		Period:     period,
		Category:   category,
		Entries:    core.SumByType(txs, core.Entrada),
		Exits:      core.SumByType(txs, core.Saida),
		Categories: core.GroupByCategory(txs, store.Categories()),
	}

	// Daily register income is cash the registers saw but the transaction
	// ledger did not; it only counts for the unfiltered view.
	if category == "all" {
		records, err := s.registers.MergedDailyRecords(ctx)
		if err != nil {
			return core.SummaryReport{}, fmt.Errorf("load daily records: %w", err)
		}
		start, end := core.PeriodRange(now, period)
		inRange := make([]core.DailyRecord, 0, len(records))
		for _, r := range records {
			if r.Date.Before(start) || r.Date.After(end) {
				continue
			}
			inRange = append(inRange, r)
		}
		report.Entries = report.Entries.Add(core.DailyIncome(inRange))
	}

	report.Balance = report.Entries.Sub(report.Exits)
	return report, nil
}

// MonthlyReport assembles the monthly movement sheet and persists a
// snapshot of it.
func (s *ReportService) MonthlyReport(ctx context.Context, ownerID string, year, month int) (core.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return core.MonthlyReport{}, fmt.Errorf("invalid month %d", month)
	}

	store, err := s.ledgers.Open(ctx, ownerID)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("open ledger: %w", err)
	}
	merged, err := s.registers.MergedDailyRecords(ctx)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("load daily records: %w", err)
	}
	priorTransfer, err := s.registers.PriorTransfer(ctx)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("load prior transfer: %w", err)
	}
	sheet, err := s.registers.MonthlySheet(ctx)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("load monthly sheet: %w", err)
	}

	records := core.FilterRecordsByMonth(merged, year, month)
	totals := core.MonthlySheetTotals(records, priorTransfer)

	var expenses core.Money
	for _, t := range store.Transactions() {
		if t.Type == core.Saida && t.Date.SameMonth(year, month) {
			expenses.Cents += t.Amount.Cents
		}
	}

	report := core.MonthlyReport{
		OwnerID:     ownerID,
		Year:        year,
		Month:       month,
		Sheet:       sheet,
		Records:     records,
		Totals:      totals,
		Expenses:    expenses,
		Balance:     totals.Grand.Sub(expenses),
		GeneratedAt: s.now(),
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("marshal report: %w", err)
	}
	if err := s.kv.Put(ctx, monthlyReportKey(year, month), raw); err != nil {
		return core.MonthlyReport{}, fmt.Errorf("persist report snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Monthly report assembled",
		"owner", ownerID,
		"year", year,
		"month", month,
		"records", len(records),
		"grand_total_cents", totals.Grand.Cents)
	return report, nil
}

// SavedMonthlyReport returns the last persisted snapshot for a month, or
// ErrNotFound when the month was never assembled.
func (s *ReportService) SavedMonthlyReport(ctx context.Context, year, month int) (core.MonthlyReport, error) {
	raw, err := s.kv.Get(ctx, monthlyReportKey(year, month))
	if err != nil {
		return core.MonthlyReport{}, err
	}
	var report core.MonthlyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return core.MonthlyReport{}, fmt.Errorf("decode report snapshot: %w", err)
	}
	return report, nil
}

// CloseMonth rebuilds the month's report, persists it and asks the export
// worker to push it out. Export is best-effort: a broker failure never
// undoes the local save.
func (s *ReportService) CloseMonth(ctx context.Context, ownerID string, year, month int) (core.MonthlyReport, error) {
	report, err := s.MonthlyReport(ctx, ownerID, year, month)
	if err != nil {
		return core.MonthlyReport{}, err
	}

	// Next month's sheet starts from this month's closing balance.
	if report.Balance.Cents >= 0 {
		if err := s.registers.SetPriorTransfer(ctx, report.Balance); err != nil {
			return core.MonthlyReport{}, fmt.Errorf("carry closing balance: %w", err)
		}
	}

	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping export message",
			"owner", ownerID, "year", year, "month", month)
		return report, nil
	}
	if err := s.amqpClient.PublishReportExport(ctx, ownerID, year, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"owner", ownerID,
			"year", year,
			"month", month,
			"error", err)
	}
	return report, nil
}

// IsNotFound reports whether err means a report snapshot was never saved.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
