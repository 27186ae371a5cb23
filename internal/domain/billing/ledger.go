package billing

import (
	"github.com/bizify/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PresentationPlaces is the number of decimal places used when amounts leave the
// system (JSON, CSV, spreadsheets, PDF). Stored values are never rounded.
const PresentationPlaces = 2

var hundred = decimal.NewFromInt(100)

// Line is the arithmetic view of a line item.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Totals holds the derived money fields of an invoice.
// Discount is the discount actually applied, after clamping to [0, Subtotal].
type Totals struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ItemAmount returns quantity × unitPrice.
func ItemAmount(quantity, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, shared.NewDomainError(shared.CodeInvalidInput, "Unit price cannot be negative")
	}
	return quantity.Mul(unitPrice), nil
}

// ComputeTotals derives subtotal, tax and total from a set of lines.
//
// Tax is charged on the discounted base. The discount is clamped to [0, subtotal]
// so the taxable base and the tax can never go negative.
func ComputeTotals(lines []Line, taxRate, discount decimal.Decimal) (Totals, error) {
	if taxRate.IsNegative() {
		return Totals{}, shared.NewDomainError(shared.CodeInvalidInput, "Tax rate cannot be negative")
	}
	if discount.IsNegative() {
		return Totals{}, shared.NewDomainError(shared.CodeInvalidInput, "Discount cannot be negative")
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		amount, err := ItemAmount(l.Quantity, l.UnitPrice)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(amount)
	}

	applied := ClampDiscount(subtotal, discount)
	base := subtotal.Sub(applied)
	tax := base.Mul(taxRate).Div(hundred)

	return Totals{
		Subtotal:  subtotal,
		Discount:  applied,
		TaxAmount: tax,
		Total:     base.Add(tax),
	}, nil
}

// ClampDiscount limits discount to the range [0, subtotal].
func ClampDiscount(subtotal, discount decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// Present rounds an amount for display.
func Present(d decimal.Decimal) decimal.Decimal {
	return d.Round(PresentationPlaces)
}

// PresentString formats an amount with exactly two decimals.
func PresentString(d decimal.Decimal) string {
	return d.StringFixed(PresentationPlaces)
}
