package core

import (
	"encoding/json"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "1",
		Type:        Saida,
		Category:    "Utilidades",
		Amount:      Money{Cents: 100},
		Description: "conta de luz",
		Date:        NewDate(2024, 3, 5),
		OwnerID:     "u1",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "transferencia", Category: "c", Amount: Money{Cents: 1}, Description: "d", Date: NewDate(2024, 3, 5)},
		{Type: Entrada, Category: "", Amount: Money{Cents: 1}, Description: "d", Date: NewDate(2024, 3, 5)},
		{Type: Entrada, Category: "c", Amount: Money{Cents: 0}, Description: "d", Date: NewDate(2024, 3, 5)},
		{Type: Entrada, Category: "c", Amount: Money{Cents: 1}, Description: "d", Date: Date{}},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestCashCountValidateTotalInvariant(t *testing.T) {
	notes := map[string]int{
		"R$ 50,00": 2,
		"R$ 0,25":  4,
	}
	cc := CashCount{
		ID:      "1",
		Date:    NewDate(2024, 3, 5),
		Notes:   notes,
		Pix:     Money{Cents: 2000},
		Total:   Money{Cents: 10100 + 2000},
		OwnerID: "u1",
	}
	if err := cc.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cc.Total.Cents++ // total no longer equals notes + electronic
	if err := cc.Validate(); err != ErrTotalMismatch {
		t.Fatalf("expected ErrTotalMismatch, got %v", err)
	}

	cc.Total.Cents--
	cc.Notes["R$ 50,00"] = -1
	if err := cc.Validate(); err != ErrNegativeCount {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
}

func TestSavedEntryValidate(t *testing.T) {
	good := SavedEntry{
		ID:    "1",
		Date:  NewDate(2024, 3, 5),
		Total: Money{Cents: 500},
		Kind:  Dizimos,
		Cash:  Money{Cents: 500},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := good
	bad.Kind = "loteria"
	if err := bad.Validate(); err != ErrInvalidKind {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	bad = good
	bad.Total = Money{}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for zero total")
	}
}

func TestTransactionJSONShape(t *testing.T) {
	tr := Transaction{
		ID:          "42",
		Type:        Entrada,
		Category:    "Dízimos",
		Amount:      Money{Cents: 10050},
		Description: "culto de domingo",
		Date:        NewDate(2024, 3, 5),
		OwnerID:     "u1",
	}
	b, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["userId"] != "u1" {
		t.Fatalf("owner must persist under userId, got %v", raw)
	}
	if raw["date"] != "2024-03-05" {
		t.Fatalf("date must persist as YYYY-MM-DD, got %v", raw["date"])
	}
	if raw["amount"] != 100.50 {
		t.Fatalf("amount must persist as decimal number, got %v", raw["amount"])
	}

	var back Transaction
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != tr.ID || back.Type != tr.Type || back.Category != tr.Category ||
		back.Amount != tr.Amount || back.Description != tr.Description ||
		!back.Date.Equal(tr.Date) || back.OwnerID != tr.OwnerID {
		t.Fatalf("round trip changed value: %+v vs %+v", back, tr)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 12, 31)
	b, _ := json.Marshal(d)
	if string(b) != `"2024-12-31"` {
		t.Fatalf("got %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip changed date")
	}
	if err := json.Unmarshal([]byte(`"31/12/2024"`), &back); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestCashTotal(t *testing.T) {
	notes := map[string]int{
		"R$ 200,00": 1,
		"R$ 10,00":  3,
		"R$ 0,05":   7,
	}
	if got := CashTotal(notes); got.Cents != 20000+3000+35 {
		t.Fatalf("got %d", got.Cents)
	}
	if got := CashTotal(nil); got.Cents != 0 {
		t.Fatalf("empty notes must total zero, got %d", got.Cents)
	}
	// Unknown labels contribute nothing.
	if got := CashTotal(map[string]int{"R$ 500,00": 2}); got.Cents != 0 {
		t.Fatalf("unknown label counted: %d", got.Cents)
	}
}
