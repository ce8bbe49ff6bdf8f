package core

import (
	"errors"
	"sort"
	"time"
)

const (
	CurrentMonth Period = "current-month"
	LastMonth    Period = "last-month"
	CurrentYear  Period = "current-year"
	LastYear     Period = "last-year"
)

// Period names a reporting window relative to a reference time.
type Period string

var ErrInvalidPeriod = errors.New("invalid period")

func (p Period) Validate() error {
	switch p {
	case CurrentMonth, LastMonth, CurrentYear, LastYear:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

// PeriodRange computes the inclusive [start, end] calendar range for a
// period relative to now. Closed periods (last-month, last-year) end on
// their last calendar day; open ones end today.
func PeriodRange(now time.Time, p Period) (Date, Date) {
	today := NewDate(now.Year(), int(now.Month()), now.Day())
	switch p {
	case LastMonth:
		start := NewDate(now.Year(), int(now.Month())-1, 1)
		// Day zero of the current month is the last day of the previous one.
		end := Date{Time: time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, time.UTC)}
		return start, end
	case CurrentYear:
		return NewDate(now.Year(), 1, 1), today
	case LastYear:
		return NewDate(now.Year()-1, 1, 1), NewDate(now.Year()-1, 12, 31)
	default: // CurrentMonth
		return NewDate(now.Year(), int(now.Month()), 1), today
	}
}

// FilterByPeriod returns the transactions whose date falls inside the
// period's range, bounds inclusive. Filtering twice with the same period
// is a no-op on the result.
func FilterByPeriod(txs []Transaction, p Period, now time.Time) []Transaction {
	start, end := PeriodRange(now, p)
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByCategory keeps transactions whose category matches exactly.
// The sentinel "all" short-circuits to identity.
func FilterByCategory(txs []Transaction, category string) []Transaction {
	if category == "all" {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// SumByType sums the amounts of all transactions of the given type.
func SumByType(txs []Transaction, typ TransactionType) Money {
	var cents int64
	for _, t := range txs {
		if t.Type == typ {
			cents += t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// Balance returns income minus expenses.
func Balance(txs []Transaction) Money {
	return SumByType(txs, Entrada).Sub(SumByType(txs, Saida))
}

// CategoryBreakdown is one row of the per-category report.
type CategoryBreakdown struct {
	Category string `json:"category"`
	Color    string `json:"color,omitempty"`
	Total    Money  `json:"total"`
	Count    int    `json:"count"`
}

// GroupByCategory sums transaction amounts per known category, preserving
// the category order. Categories with a zero total are omitted.
func GroupByCategory(txs []Transaction, categories []ExpenseCategory) []CategoryBreakdown {
	out := make([]CategoryBreakdown, 0, len(categories))
	for _, c := range categories {
		row := CategoryBreakdown{Category: c.Name, Color: c.Color}
		for _, t := range txs {
			if t.Category != c.Name {
				continue
			}
			row.Total.Cents += t.Amount.Cents
			row.Count++
		}
		if row.Total.Cents == 0 {
			continue
		}
		out = append(out, row)
	}
	return out
}

// DayConsolidation is one display card per calendar day, merging every
// counting session saved on that date.
type DayConsolidation struct {
	Date         Date                   `json:"date"`
	Total        Money                  `json:"total"`
	Payment      PaymentBreakdown       `json:"payment"`
	ByKind       map[OfferingKind]Money `json:"byKind,omitempty"`
	Responsibles []string               `json:"responsibles,omitempty"`
}

// ConsolidateDaily groups saved entries by date. Within a date, monetary
// fields are summed, never overwritten, and responsible names are merged
// without duplicates. The result is sorted by date, so it does not depend
// on insertion order.
func ConsolidateDaily(entries []SavedEntry) []DayConsolidation {
	byDate := make(map[string]*DayConsolidation)
	seen := make(map[string]map[string]bool)

	for _, e := range entries {
		key := e.Date.String()
		day, ok := byDate[key]
		if !ok {
			day = &DayConsolidation{Date: e.Date, ByKind: make(map[OfferingKind]Money)}
			byDate[key] = day
			seen[key] = make(map[string]bool)
		}
		day.Total.Cents += e.Total.Cents
		day.Payment.Cash.Cents += e.Cash.Cents
		day.Payment.Pix.Cents += e.Pix.Cents
		day.Payment.Card.Cents += e.Card.Cents
		if e.Kind != "" {
			kindTotal := day.ByKind[e.Kind]
			kindTotal.Cents += e.Total.Cents
			day.ByKind[e.Kind] = kindTotal
		}
		for _, name := range []string{e.Responsible1, e.Responsible2, e.Responsible3} {
			if name == "" || seen[key][name] {
				continue
			}
			seen[key][name] = true
			day.Responsibles = append(day.Responsibles, name)
		}
	}

	out := make([]DayConsolidation, 0, len(byDate))
	for _, day := range byDate {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// OfferingSummary is the per-kind payment breakdown shown on the dashboard.
type OfferingSummary struct {
	Payment PaymentBreakdown `json:"payment"`
	Total   Money            `json:"total"`
}

// OfferingTotals sums saved entries per offering kind and payment method.
func OfferingTotals(entries []SavedEntry) map[OfferingKind]OfferingSummary {
	out := make(map[OfferingKind]OfferingSummary)
	for _, e := range entries {
		if e.Kind == "" {
			continue
		}
		s := out[e.Kind]
		s.Payment.Cash.Cents += e.Cash.Cents
		s.Payment.Pix.Cents += e.Pix.Cents
		s.Payment.Card.Cents += e.Card.Cents
		s.Total.Cents += e.Total.Cents
		out[e.Kind] = s
	}
	return out
}

// SheetTotals are the monthly sheet footer figures.
type SheetTotals struct {
	Cash          Money `json:"totalCash"`
	Transfers     Money `json:"totalTransfer"`
	Missionary    Money `json:"totalMissionary"`
	PriorTransfer Money `json:"previousMonthTransfer"`
	Grand         Money `json:"grandTotal"`
}

// MonthlySheetTotals reduces a month's daily records. The missionary
// offering always adds into the grand total, the same sign it carries in
// every per-day figure.
func MonthlySheetTotals(records []DailyRecord, priorTransfer Money) SheetTotals {
	t := SheetTotals{PriorTransfer: priorTransfer}
	for _, r := range records {
		t.Cash.Cents += r.CashAmount.Cents
		t.Transfers.Cents += r.Transfer.Cents
		t.Missionary.Cents += r.MissionaryOffering.Cents
	}
	t.Grand.Cents = t.Cash.Cents + t.Transfers.Cents + t.Missionary.Cents + t.PriorTransfer.Cents
	return t
}

// DailyIncome sums everything a daily record brought in.
func DailyIncome(records []DailyRecord) Money {
	var cents int64
	for _, r := range records {
		cents += r.CashAmount.Cents + r.Transfer.Cents + r.MissionaryOffering.Cents
	}
	return Money{Cents: cents}
}

// FilterRecordsByMonth keeps the daily records of a given year and month.
func FilterRecordsByMonth(records []DailyRecord, year, month int) []DailyRecord {
	out := make([]DailyRecord, 0, len(records))
	for _, r := range records {
		if r.Date.SameMonth(year, month) {
			out = append(out, r)
		}
	}
	return out
}

// FilterEntriesByMonth keeps the saved entries of a given year and month.
func FilterEntriesByMonth(entries []SavedEntry, year, month int) []SavedEntry {
	out := make([]SavedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date.SameMonth(year, month) {
			out = append(out, e)
		}
	}
	return out
}

// EntriesTotal sums saved entry totals.
func EntriesTotal(entries []SavedEntry) Money {
	var cents int64
	for _, e := range entries {
		cents += e.Total.Cents
	}
	return Money{Cents: cents}
}
