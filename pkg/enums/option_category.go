package enums

import "fmt"

// OptionCategory groups the products offered by the custom car builder.
type OptionCategory string

const (
	OptionCategoryExterior OptionCategory = "exterior"
	OptionCategoryInterior OptionCategory = "interior"
	OptionCategoryColor    OptionCategory = "color"
)

var validOptionCategories = []OptionCategory{
	OptionCategoryExterior,
	OptionCategoryInterior,
	OptionCategoryColor,
}

// Cardinality declares how many selections a category admits at once.
type Cardinality string

const (
	// CardinalityExclusive categories hold at most one selection; a new
	// selection replaces the previous one.
	CardinalityExclusive Cardinality = "exclusive"
	// CardinalityAdditive categories accumulate selections, deduplicated
	// by product identity.
	CardinalityAdditive Cardinality = "additive"
)

// cardinalityByCategory is data, not code: adding a new exclusive category is
// a change here, never a string comparison in the builder.
var cardinalityByCategory = map[OptionCategory]Cardinality{
	OptionCategoryExterior: CardinalityAdditive,
	OptionCategoryInterior: CardinalityAdditive,
	OptionCategoryColor:    CardinalityExclusive,
}

// String implements fmt.Stringer.
func (o OptionCategory) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OptionCategory.
func (o OptionCategory) IsValid() bool {
	for _, candidate := range validOptionCategories {
		if candidate == o {
			return true
		}
	}
	return false
}

// Cardinality returns the declared selection policy for the category.
// Unknown categories default to additive.
func (o OptionCategory) Cardinality() Cardinality {
	if c, ok := cardinalityByCategory[o]; ok {
		return c
	}
	return CardinalityAdditive
}

// ParseOptionCategory converts raw input into an OptionCategory.
func ParseOptionCategory(value string) (OptionCategory, error) {
	for _, candidate := range validOptionCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option category %q", value)
}
