package services

import (
	"context"
	"testing"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger/memory"
)

func newTestDashboardService(t *testing.T) (*DashboardService, *ledger.Manager, *ledger.Registers) {
	t.Helper()
	kv := memory.New()
	ledgers := ledger.NewManager(kv)
	registers := ledger.NewRegisters(kv)
	svc := NewDashboardService(ledgers, registers)
	svc.now = fixedNow
	return svc, ledgers, registers
}

func TestMetricsAggregatesCurrentMonth(t *testing.T) {
	svc, ledgers, registers := newTestDashboardService(t)
	ctx := context.Background()

	addTransaction(t, ledgers, "u1", core.Transaction{
		Type: core.Entrada, Category: "dizimos",
		Amount: core.Money{Cents: 20000}, Date: mustDate(t, "2024-03-01"),
	})
	addTransaction(t, ledgers, "u1", core.Transaction{
		Type: core.Saida, Category: "Alimentação",
		Amount: core.Money{Cents: 5000}, Date: mustDate(t, "2024-03-02"),
	})
	if _, err := registers.AddSavedEntry(ctx, core.SavedEntry{
		Date:         mustDate(t, "2024-03-10"),
		Total:        core.Money{Cents: 8000},
		Responsible1: "Maria",
		Kind:         core.Ofertas,
		Cash:         core.Money{Cents: 6000},
		Pix:          core.Money{Cents: 2000},
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	metrics, err := svc.Metrics(ctx, "u1")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}

	// 20000 ledger income + 8000 daily register income from the entry.
	if metrics.Entries.Cents != 28000 {
		t.Errorf("entries = %d, want 28000", metrics.Entries.Cents)
	}
	if metrics.Exits.Cents != 5000 {
		t.Errorf("exits = %d, want 5000", metrics.Exits.Cents)
	}
	if metrics.Balance.Cents != 23000 {
		t.Errorf("balance = %d, want 23000", metrics.Balance.Cents)
	}

	offering, ok := metrics.Offerings[core.Ofertas]
	if !ok {
		t.Fatal("expected ofertas offering summary")
	}
	if offering.Payment.Pix.Cents != 2000 || offering.Total.Cents != 8000 {
		t.Errorf("offering summary = %+v", offering)
	}
}

func TestMetricsTodayCountAndRecent(t *testing.T) {
	svc, ledgers, _ := newTestDashboardService(t)
	ctx := context.Background()

	store, err := ledgers.Open(ctx, "u1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.SaveCashCount(ctx, core.CashCount{
		Date:  mustDate(t, "2024-03-15"),
		Notes: map[string]int{"R$ 50,00": 2},
		Total: core.Money{Cents: 10000},
	}); err != nil {
		t.Fatalf("save count: %v", err)
	}

	for _, day := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05", "2024-03-06"} {
		addTransaction(t, ledgers, "u1", core.Transaction{
			Type: core.Entrada, Category: "ofertas",
			Amount: core.Money{Cents: 100}, Date: mustDate(t, day),
		})
	}

	metrics, err := svc.Metrics(ctx, "u1")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if metrics.TodayCount == nil || metrics.TodayCount.Total.Cents != 10000 {
		t.Fatalf("today count = %+v", metrics.TodayCount)
	}
	if len(metrics.Recent) != recentTransactionLimit {
		t.Fatalf("recent length = %d, want %d", len(metrics.Recent), recentTransactionLimit)
	}
	if metrics.Recent[0].Date.String() != "2024-03-06" {
		t.Errorf("recent not newest first: %s", metrics.Recent[0].Date)
	}
}
