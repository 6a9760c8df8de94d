package enums

import "fmt"

// GemstonePricing records how a line item's gemstone cost is determined:
// derived from carat weight times a per-carat price, or entered manually as
// a lump sum.
type GemstonePricing string

const (
	GemstonePricingDerived GemstonePricing = "derived"
	GemstonePricingManual  GemstonePricing = "manual"
)

var validGemstonePricings = []GemstonePricing{
	GemstonePricingDerived,
	GemstonePricingManual,
}

// String implements fmt.Stringer.
func (p GemstonePricing) String() string {
	return string(p)
}

// IsValid reports whether the value is a known GemstonePricing.
func (p GemstonePricing) IsValid() bool {
	for _, candidate := range validGemstonePricings {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseGemstonePricing converts raw input into a GemstonePricing.
func ParseGemstonePricing(value string) (GemstonePricing, error) {
	for _, candidate := range validGemstonePricings {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gemstone pricing %q", value)
}
