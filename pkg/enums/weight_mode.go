package enums

import "fmt"

// WeightMode controls whether net metal weight is derived from gross weight
// minus stone displacement or entered directly.
type WeightMode string

const (
	WeightModeGross WeightMode = "gross"
	WeightModeNet   WeightMode = "net"
)

var validWeightModes = []WeightMode{
	WeightModeGross,
	WeightModeNet,
}

// String implements fmt.Stringer.
func (m WeightMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known WeightMode.
func (m WeightMode) IsValid() bool {
	for _, candidate := range validWeightModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseWeightMode converts raw input into a WeightMode.
func ParseWeightMode(value string) (WeightMode, error) {
	for _, candidate := range validWeightModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weight mode %q", value)
}
