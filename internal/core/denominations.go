package core

// Denomination is one Brazilian bank note or coin face value.
type Denomination struct {
	Label string // display label, also the key used in CashCount.Notes
	Cents int64  // face value in cents
	Coin  bool
}

// Denominations lists Brazilian currency from the R$200 note down to the
// one-cent coin, in counting order.
var Denominations = []Denomination{
	{Label: "R$ 200,00", Cents: 20000},
	{Label: "R$ 100,00", Cents: 10000},
	{Label: "R$ 50,00", Cents: 5000},
	{Label: "R$ 20,00", Cents: 2000},
	{Label: "R$ 10,00", Cents: 1000},
	{Label: "R$ 5,00", Cents: 500},
	{Label: "R$ 2,00", Cents: 200},
	{Label: "R$ 1,00", Cents: 100, Coin: true},
	{Label: "R$ 0,50", Cents: 50, Coin: true},
	{Label: "R$ 0,25", Cents: 25, Coin: true},
	{Label: "R$ 0,10", Cents: 10, Coin: true},
	{Label: "R$ 0,05", Cents: 5, Coin: true},
	{Label: "R$ 0,01", Cents: 1, Coin: true},
}

var denominationByLabel = func() map[string]int64 {
	m := make(map[string]int64, len(Denominations))
	for _, d := range Denominations {
		m[d.Label] = d.Cents
	}
	return m
}()

// CashTotal sums count x face value over the counted denominations.
// Labels that do not name a known denomination contribute nothing.
func CashTotal(notes map[string]int) Money {
	var cents int64
	for label, count := range notes {
		if count <= 0 {
			continue
		}
		if face, ok := denominationByLabel[label]; ok {
			cents += face * int64(count)
		}
	}
	return Money{Cents: cents}
}
