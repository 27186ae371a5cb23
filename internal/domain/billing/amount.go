package billing

import (
	"github.com/shopspring/decimal"
)

// Amount is a money value that serializes as a JSON number with exactly two
// decimals. It is a presentation type; arithmetic stays on decimal.Decimal.
type Amount decimal.Decimal

// NewAmount wraps d for presentation
func NewAmount(d decimal.Decimal) Amount {
	return Amount(d)
}

// Decimal returns the underlying value
func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(PresentString(decimal.Decimal(a))), nil
}

// UnmarshalJSON accepts both quoted and bare numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}

// Number is an unrounded decimal that serializes as a bare JSON number.
// Quantities and unit prices use it so exports keep full precision.
type Number decimal.Decimal

// NewNumber wraps d
func NewNumber(d decimal.Decimal) Number {
	return Number(d)
}

// Decimal returns the underlying value
func (n Number) Decimal() decimal.Decimal {
	return decimal.Decimal(n)
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = Number(d)
	return nil
}
