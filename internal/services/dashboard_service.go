package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger"
)

const recentTransactionLimit = 5

// DashboardService computes the landing page snapshot.
type DashboardService struct {
	ledgers   *ledger.Manager
	registers *ledger.Registers
	now       func() time.Time
}

func NewDashboardService(ledgers *ledger.Manager, registers *ledger.Registers) *DashboardService {
	return &DashboardService{
		ledgers:   ledgers,
		registers: registers,
		now:       time.Now,
	}
}

// Metrics aggregates the current month for one owner: entries, exits,
// balance, per-offering payment totals, today's cash count and the most
// recent transactions.
func (s *DashboardService) Metrics(ctx context.Context, ownerID string) (core.DashboardMetrics, error) {
	store, err := s.ledgers.Open(ctx, ownerID)
	if err != nil {
		return core.DashboardMetrics{}, fmt.Errorf("open ledger: %w", err)
	}

	now := s.now()
	txs := store.Transactions()
	monthTxs := core.FilterByPeriod(txs, core.CurrentMonth, now)

	metrics := core.DashboardMetrics{
		Entries: core.SumByType(monthTxs, core.Entrada),
		Exits:   core.SumByType(monthTxs, core.Saida),
	}

	records, err := s.registers.MergedDailyRecords(ctx)
	if err != nil {
		return core.DashboardMetrics{}, fmt.Errorf("load daily records: %w", err)
	}
	monthRecords := core.FilterRecordsByMonth(records, now.Year(), int(now.Month()))
	metrics.Entries = metrics.Entries.Add(core.DailyIncome(monthRecords))
	metrics.Balance = metrics.Entries.Sub(metrics.Exits)

	entries, err := s.registers.SavedEntries(ctx)
	if err != nil {
		return core.DashboardMetrics{}, fmt.Errorf("load saved entries: %w", err)
	}
	metrics.Offerings = core.OfferingTotals(core.FilterEntriesByMonth(entries, now.Year(), int(now.Month())))

	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	for _, cc := range store.CashCounts() {
		if cc.Date.Equal(today) {
			count := cc
			metrics.TodayCount = &count
		}
	}

	sorted := make([]core.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[j].Date.Before(sorted[i].Date) })
	if len(sorted) > recentTransactionLimit {
		sorted = sorted[:recentTransactionLimit]
	}
	metrics.Recent = sorted

	return metrics, nil
}
