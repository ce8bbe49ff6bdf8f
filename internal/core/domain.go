package core

import (
	"errors"
	"strings"
)

const (
	Entrada TransactionType = "entrada"
	Saida   TransactionType = "saida"
)

const (
	Dizimos            OfferingKind = "dizimos"
	Ofertas            OfferingKind = "ofertas"
	OfertasMissionaria OfferingKind = "ofertas-missionarias"
)

type (
	// TransactionType tags a transaction as income or expense. The two
	// partitions are exhaustive: every amount is counted exactly once.
	TransactionType string

	// OfferingKind tags a counting session by what was counted.
	OfferingKind string

	// Transaction is a single income or expense record owned by one user.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		OwnerID     string          `json:"userId"`
	}

	// CashCount is one cash-counting session: denomination label to piece
	// count, plus electronic amounts recorded alongside. Sessions are
	// immutable after save.
	CashCount struct {
		ID      string         `json:"id"`
		Date    Date           `json:"date"`
		Notes   map[string]int `json:"notes"`
		Total   Money          `json:"total"`
		Pix     Money          `json:"pix,omitempty"`
		Card    Money          `json:"cartao,omitempty"`
		OwnerID string         `json:"userId"`
	}

	// PaymentBreakdown splits a counted total by payment method.
	PaymentBreakdown struct {
		Cash Money `json:"dinheiro"`
		Pix  Money `json:"pix"`
		Card Money `json:"cartao"`
	}

	// SavedEntry is one saved counting-session card shown on the daily
	// counting screen. Entries with the same date are consolidated for
	// display, never overwritten.
	SavedEntry struct {
		ID           string       `json:"id"`
		Date         Date         `json:"date"`
		Total        Money        `json:"total"`
		Responsible1 string       `json:"responsible1,omitempty"`
		Responsible2 string       `json:"responsible2,omitempty"`
		Responsible3 string       `json:"responsible3,omitempty"`
		Kind         OfferingKind `json:"type,omitempty"`
		Cash         Money        `json:"dinheiro"`
		Pix          Money        `json:"pix"`
		Card         Money        `json:"cartao"`
	}

	// DailyRecord is one line of the monthly sheet: the cash taken on a
	// day plus transfers and the missionary offering.
	DailyRecord struct {
		ID                    string `json:"id"`
		Date                  Date   `json:"date"`
		CashAmount            Money  `json:"cashAmount"`
		Responsible1          string `json:"responsible1,omitempty"`
		Responsible2          string `json:"responsible2,omitempty"`
		Responsible3          string `json:"responsible3,omitempty"`
		Transfer              Money  `json:"transfer"`
		MissionaryOffering    Money  `json:"missionaryOffering"`
		MissionaryResponsible string `json:"missionaryResponsible,omitempty"`
	}

	// ExpenseCategory labels expense transactions. Color is display-only.
	ExpenseCategory struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Color   string `json:"color"`
		OwnerID string `json:"userId"`
	}

	// MonthlySheet is the fixed header of the monthly consolidation sheet.
	MonthlySheet struct {
		PDACode        string `json:"pdaCode"`
		UnitType       string `json:"unitType"`
		Month          int    `json:"month"`
		Year           int    `json:"year"`
		HasSafeBox     *bool  `json:"hasSafeBox"`
		SelfSustaining string `json:"selfSustaining,omitempty"`
		ReasonIfNot    string `json:"reasonIfNot,omitempty"`
		ClosingDate    Date   `json:"closingDate"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidKind      = errors.New("invalid offering kind")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrLongDescription  = errors.New("description too long")
	ErrNegativeCount    = errors.New("negative denomination count")
	ErrTotalMismatch    = errors.New("total does not match counted denominations")
)

func (t TransactionType) Validate() error {
	switch t {
	case Entrada, Saida:
		return nil
	default:
		return ErrInvalidType
	}
}

func (k OfferingKind) Validate() error {
	switch k {
	case Dizimos, Ofertas, OfertasMissionaria:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	// Description is optional, only capped.
	if len(t.Description) > 200 {
		return ErrLongDescription
	}
	return t.Amount.Validate()
}

// Total returns the session grand total across payment methods.
func (p PaymentBreakdown) Total() Money {
	return Money{Cents: p.Cash.Cents + p.Pix.Cents + p.Card.Cents}
}

func (c CashCount) Validate() error {
	if err := c.Date.Validate(); err != nil {
		return err
	}
	for _, count := range c.Notes {
		if count < 0 {
			return ErrNegativeCount
		}
	}
	if c.Pix.Cents < 0 || c.Card.Cents < 0 {
		return ErrInvalidAmount
	}
	// Total must equal counted cash plus the electronic amounts recorded
	// alongside the session.
	want := CashTotal(c.Notes).Cents + c.Pix.Cents + c.Card.Cents
	if c.Total.Cents != want {
		return ErrTotalMismatch
	}
	if c.Total.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Payment returns the entry's per-method breakdown.
func (e SavedEntry) Payment() PaymentBreakdown {
	return PaymentBreakdown{Cash: e.Cash, Pix: e.Pix, Card: e.Card}
}

func (e SavedEntry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Kind != "" {
		if err := e.Kind.Validate(); err != nil {
			return err
		}
	}
	if e.Cash.Cents < 0 || e.Pix.Cents < 0 || e.Card.Cents < 0 {
		return ErrInvalidAmount
	}
	return e.Total.Validate()
}

func (r DailyRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if r.CashAmount.Cents < 0 || r.Transfer.Cents < 0 || r.MissionaryOffering.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c ExpenseCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	return nil
}
