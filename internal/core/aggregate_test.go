package core

import (
	"testing"
	"time"
)

func tx(typ TransactionType, cents int64, category, date string) Transaction {
	d, _ := ParseDate(date)
	return Transaction{
		ID:       date + "-" + string(typ),
		Type:     typ,
		Category: category,
		Amount:   Money{Cents: cents},
		Date:     d,
		OwnerID:  "u1",
	}
}

func TestSumByTypePartitions(t *testing.T) {
	txs := []Transaction{
		tx(Entrada, 10000, "Dízimos", "2024-03-01"),
		tx(Saida, 4000, "Utilidades", "2024-03-02"),
	}

	entradas := SumByType(txs, Entrada)
	saidas := SumByType(txs, Saida)
	if entradas.Cents != 10000 {
		t.Fatalf("entradas = %d, want 10000", entradas.Cents)
	}
	if saidas.Cents != 4000 {
		t.Fatalf("saidas = %d, want 4000", saidas.Cents)
	}
	if got := Balance(txs); got.Cents != 6000 {
		t.Fatalf("balance = %d, want 6000", got.Cents)
	}

	// No overlap, no omission: the two partitions cover every amount once.
	var all int64
	for _, x := range txs {
		all += x.Amount.Cents
	}
	if entradas.Cents+saidas.Cents != all {
		t.Fatalf("partitions sum to %d, want %d", entradas.Cents+saidas.Cents, all)
	}
}

func TestFilterByPeriodLastMonthInclusive(t *testing.T) {
	// Called in April: only March survives, March 1 and 31 inclusive.
	now := time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)
	txs := []Transaction{
		tx(Entrada, 100, "Ofertas", "2024-02-29"),
		tx(Entrada, 200, "Ofertas", "2024-03-01"),
		tx(Entrada, 300, "Ofertas", "2024-03-31"),
		tx(Entrada, 400, "Ofertas", "2024-04-01"),
	}

	got := FilterByPeriod(txs, LastMonth, now)
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	if got[0].Amount.Cents != 200 || got[1].Amount.Cents != 300 {
		t.Fatalf("wrong transactions survived: %+v", got)
	}
}

func TestFilterByPeriodIdempotent(t *testing.T) {
	now := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		tx(Entrada, 100, "Ofertas", "2024-03-05"),
		tx(Saida, 50, "Utilidades", "2024-04-02"),
		tx(Entrada, 75, "Ofertas", "2023-12-31"),
	}

	for _, p := range []Period{CurrentMonth, LastMonth, CurrentYear, LastYear} {
		once := FilterByPeriod(txs, p, now)
		twice := FilterByPeriod(once, p, now)
		if len(once) != len(twice) {
			t.Fatalf("period %s: %d then %d entries", p, len(once), len(twice))
		}
		for i := range once {
			if once[i].ID != twice[i].ID {
				t.Fatalf("period %s: entry %d changed after refilter", p, i)
			}
		}
	}
}

func TestFilterByCategoryAllIsIdentity(t *testing.T) {
	txs := []Transaction{
		tx(Saida, 100, "Utilidades", "2024-03-01"),
		tx(Saida, 200, "Educação", "2024-03-02"),
	}
	if got := FilterByCategory(txs, "all"); len(got) != 2 {
		t.Fatalf("got %d, want 2", len(got))
	}
	got := FilterByCategory(txs, "Educação")
	if len(got) != 1 || got[0].Category != "Educação" {
		t.Fatalf("got %+v", got)
	}
	if got := FilterByCategory(txs, "Transporte"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestGroupByCategoryOmitsZeroTotals(t *testing.T) {
	cats := []ExpenseCategory{
		{ID: "1", Name: "Alimentação", Color: "#FF6F00"},
		{ID: "2", Name: "Transporte", Color: "#4CAF50"},
		{ID: "3", Name: "Utilidades", Color: "#2196F3"},
	}
	txs := []Transaction{
		tx(Saida, 1500, "Alimentação", "2024-03-01"),
		tx(Saida, 500, "Alimentação", "2024-03-08"),
		tx(Saida, 900, "Utilidades", "2024-03-10"),
	}

	rows := GroupByCategory(txs, cats)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Category != "Alimentação" || rows[0].Total.Cents != 2000 || rows[0].Count != 2 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Category != "Utilidades" || rows[1].Total.Cents != 900 || rows[1].Count != 1 {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func entry(id, date string, total int64, kind OfferingKind, resp string) SavedEntry {
	d, _ := ParseDate(date)
	return SavedEntry{
		ID:           id,
		Date:         d,
		Total:        Money{Cents: total},
		Kind:         kind,
		Cash:         Money{Cents: total},
		Responsible1: resp,
	}
}

func TestConsolidateDailyMergesSameDate(t *testing.T) {
	a := entry("a", "2024-03-05", 15000, Dizimos, "Maria")
	b := entry("b", "2024-03-05", 7550, Ofertas, "João")
	b.Responsible2 = "Maria" // duplicate name, must not repeat

	days := ConsolidateDaily([]SavedEntry{a, b})
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	day := days[0]
	if day.Total.Cents != 22550 {
		t.Fatalf("total = %d, want 22550", day.Total.Cents)
	}
	if day.Payment.Cash.Cents != 22550 {
		t.Fatalf("cash = %d, want 22550", day.Payment.Cash.Cents)
	}
	if day.ByKind[Dizimos].Cents != 15000 || day.ByKind[Ofertas].Cents != 7550 {
		t.Fatalf("byKind = %+v", day.ByKind)
	}
	if len(day.Responsibles) != 2 {
		t.Fatalf("responsibles = %v, want 2 unique names", day.Responsibles)
	}
}

func TestConsolidateDailyOrderIndependent(t *testing.T) {
	a := entry("a", "2024-03-05", 100, Dizimos, "")
	b := entry("b", "2024-03-05", 200, Dizimos, "")
	c := entry("c", "2024-03-06", 300, Ofertas, "")

	forward := ConsolidateDaily([]SavedEntry{a, b, c})
	backward := ConsolidateDaily([]SavedEntry{c, b, a})
	if len(forward) != len(backward) {
		t.Fatalf("length mismatch: %d vs %d", len(forward), len(backward))
	}
	for i := range forward {
		if !forward[i].Date.Equal(backward[i].Date) || forward[i].Total.Cents != backward[i].Total.Cents {
			t.Fatalf("day %d differs: %+v vs %+v", i, forward[i], backward[i])
		}
	}
}

func TestConsolidateDailySameKindSumsNotOverwrites(t *testing.T) {
	a := entry("a", "2024-03-05", 100, Dizimos, "")
	b := entry("b", "2024-03-05", 250, Dizimos, "")
	days := ConsolidateDaily([]SavedEntry{a, b})
	if days[0].ByKind[Dizimos].Cents != 350 {
		t.Fatalf("dizimos = %d, want 350", days[0].ByKind[Dizimos].Cents)
	}
}

func TestAggregatorsOnEmptyInput(t *testing.T) {
	if got := SumByType(nil, Entrada); got.Cents != 0 {
		t.Fatalf("sum of nothing = %d", got.Cents)
	}
	if got := FilterByPeriod(nil, CurrentMonth, time.Now()); len(got) != 0 {
		t.Fatalf("filter of nothing = %v", got)
	}
	if got := GroupByCategory(nil, nil); len(got) != 0 {
		t.Fatalf("group of nothing = %v", got)
	}
	if got := ConsolidateDaily(nil); len(got) != 0 {
		t.Fatalf("consolidate of nothing = %v", got)
	}
	if got := MonthlySheetTotals(nil, Money{}); got.Grand.Cents != 0 {
		t.Fatalf("sheet totals of nothing = %+v", got)
	}
	if got := OfferingTotals(nil); len(got) != 0 {
		t.Fatalf("offering totals of nothing = %v", got)
	}
}

func TestMonthlySheetTotalsAddsMissionary(t *testing.T) {
	d, _ := ParseDate("2024-03-03")
	records := []DailyRecord{
		{ID: "1", Date: d, CashAmount: Money{Cents: 10000}, Transfer: Money{Cents: 2000}, MissionaryOffering: Money{Cents: 1500}},
		{ID: "2", Date: d, CashAmount: Money{Cents: 5000}, MissionaryOffering: Money{Cents: 500}},
	}

	totals := MonthlySheetTotals(records, Money{Cents: 3000})
	if totals.Cash.Cents != 15000 {
		t.Fatalf("cash = %d", totals.Cash.Cents)
	}
	if totals.Transfers.Cents != 2000 {
		t.Fatalf("transfers = %d", totals.Transfers.Cents)
	}
	if totals.Missionary.Cents != 2000 {
		t.Fatalf("missionary = %d", totals.Missionary.Cents)
	}
	if totals.Grand.Cents != 22000 {
		t.Fatalf("grand = %d, want 22000", totals.Grand.Cents)
	}
}

func TestPeriodRangeBounds(t *testing.T) {
	now := time.Date(2024, time.April, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		p          Period
		start, end string
	}{
		{CurrentMonth, "2024-04-01", "2024-04-15"},
		{LastMonth, "2024-03-01", "2024-03-31"},
		{CurrentYear, "2024-01-01", "2024-04-15"},
		{LastYear, "2023-01-01", "2023-12-31"},
	}
	for _, tc := range cases {
		start, end := PeriodRange(now, tc.p)
		if start.String() != tc.start || end.String() != tc.end {
			t.Fatalf("%s: [%s, %s], want [%s, %s]", tc.p, start, end, tc.start, tc.end)
		}
	}
}

func TestPeriodValidate(t *testing.T) {
	if err := CurrentMonth.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Period("fortnight").Validate(); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}
