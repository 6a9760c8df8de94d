package enums

import "fmt"

// TaxMode selects the tax regime applied to an estimate. Split applies
// SGST+CGST, consolidated applies IGST, none skips tax entirely. The modes
// are mutually exclusive.
type TaxMode string

const (
	TaxModeSplit        TaxMode = "split"
	TaxModeConsolidated TaxMode = "consolidated"
	TaxModeNone         TaxMode = "none"
)

var validTaxModes = []TaxMode{
	TaxModeSplit,
	TaxModeConsolidated,
	TaxModeNone,
}

// String implements fmt.Stringer.
func (m TaxMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known TaxMode.
func (m TaxMode) IsValid() bool {
	for _, candidate := range validTaxModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseTaxMode converts raw input into a TaxMode.
func ParseTaxMode(value string) (TaxMode, error) {
	for _, candidate := range validTaxModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tax mode %q", value)
}
