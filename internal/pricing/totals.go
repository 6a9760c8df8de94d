package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nishantzaveri/jewelbooks-backend/pkg/enums"
)

var percentBase = decimal.NewFromInt(100)

// Config carries the estimate-level pricing inputs: margin, tax regime,
// shipping, and the secondary-currency exchange rate. The shipping zone is a
// descriptive label and never enters the arithmetic.
type Config struct {
	MarginPercent  decimal.Decimal
	TaxMode        enums.TaxMode
	SGSTPercent    decimal.Decimal
	CGSTPercent    decimal.Decimal
	IGSTPercent    decimal.Decimal
	ShippingCharge decimal.Decimal
	ShippingZone   string
	ExchangeRate   decimal.Decimal
}

// Totals is the derived block of an estimate. Every field is a pure function
// of the current line items and config, rounded to 2 decimal places at the
// point of storage.
type Totals struct {
	TotalCost      decimal.Decimal
	SellingPrice   decimal.Decimal
	SGSTAmount     decimal.Decimal
	CGSTAmount     decimal.Decimal
	IGSTAmount     decimal.Decimal
	GrandTotal     decimal.Decimal
	SecondaryTotal decimal.Decimal
}

// ComputeTotals aggregates the collection against the config:
//
//	total cost    = sum of line subtotals
//	selling price = total cost x (1 + margin/100)
//	taxes         = selling price x pct/100, mutually exclusive by tax mode
//	grand total   = selling price + taxes + shipping
//	secondary     = grand total / exchange rate
//
// Intermediate arithmetic runs at full precision; each stored output rounds
// once, so the grand total always equals the sum of its rounded components.
// A non-positive exchange rate yields a zero secondary total rather than a
// division blowup; a zero rate means the secondary currency is disabled.
func ComputeTotals(items Collection, cfg Config) Totals {
	var t Totals

	t.TotalCost = items.Total()
	margin := decimal.NewFromInt(1).Add(cfg.MarginPercent.Div(percentBase))
	t.SellingPrice = t.TotalCost.Mul(margin).Round(2)

	switch cfg.TaxMode {
	case enums.TaxModeSplit:
		t.SGSTAmount = t.SellingPrice.Mul(cfg.SGSTPercent).Div(percentBase).Round(2)
		t.CGSTAmount = t.SellingPrice.Mul(cfg.CGSTPercent).Div(percentBase).Round(2)
	case enums.TaxModeConsolidated:
		t.IGSTAmount = t.SellingPrice.Mul(cfg.IGSTPercent).Div(percentBase).Round(2)
	}

	t.GrandTotal = t.SellingPrice.
		Add(t.SGSTAmount).
		Add(t.CGSTAmount).
		Add(t.IGSTAmount).
		Add(cfg.ShippingCharge.Round(2))

	if cfg.ExchangeRate.IsPositive() {
		t.SecondaryTotal = t.GrandTotal.Div(cfg.ExchangeRate).Round(2)
	}
	return t
}
