// README: Common money value object used across modules.
package types

// Money is an amount in minor currency units (kopecks).
type Money struct {
	Amount   int64
	Currency string
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}
}
