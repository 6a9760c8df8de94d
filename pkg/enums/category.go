package enums

import "fmt"

// Category selects which line-item sub-fields are relevant for an estimate.
// Cost computation is identical across categories; fields that do not apply
// simply stay zero.
type Category string

const (
	CategoryJewelry      Category = "jewelry"
	CategoryLooseDiamond Category = "loose_diamond"
	CategoryGemstone     Category = "gemstone"
)

var validCategories = []Category{
	CategoryJewelry,
	CategoryLooseDiamond,
	CategoryGemstone,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
