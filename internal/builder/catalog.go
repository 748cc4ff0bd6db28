package builder

import (
	"fmt"
	"strings"
)

// Brand is a buildable car make.
type Brand struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Model is one buildable car within a brand.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var brands = []Brand{
	{ID: "toyota", Name: "Toyota", Image: "/img/cars/toyota.jpeg"},
	{ID: "honda", Name: "Honda", Image: "/img/cars/honda.jpeg"},
	{ID: "bmw", Name: "BMW", Image: "/img/cars/bmw.jpeg"},
	{ID: "audi", Name: "Audi", Image: "/img/cars/audi.jpeg"},
	{ID: "nissan", Name: "Nissan", Image: "/img/cars/nissan.jpeg"},
}

var modelsByBrand = map[string][]Model{
	"toyota": {
		{ID: "corolla", Name: "Corolla"},
		{ID: "camry", Name: "Camry"},
		{ID: "prius", Name: "Prius"},
		{ID: "rav4", Name: "RAV4"},
	},
	"honda": {
		{ID: "civic", Name: "Civic"},
		{ID: "accord", Name: "Accord"},
		{ID: "crv", Name: "CR-V"},
		{ID: "hrv", Name: "HR-V"},
	},
	"bmw": {
		{ID: "series3", Name: "3 Series"},
		{ID: "series5", Name: "5 Series"},
		{ID: "x5", Name: "X5"},
		{ID: "x3", Name: "X3"},
	},
	"audi": {
		{ID: "a4", Name: "A4"},
		{ID: "a6", Name: "A6"},
		{ID: "q5", Name: "Q5"},
		{ID: "q7", Name: "Q7"},
	},
	"nissan": {
		{ID: "altima", Name: "Altima"},
		{ID: "maxima", Name: "Maxima"},
		{ID: "murano", Name: "Murano"},
		{ID: "rogue", Name: "Rogue"},
	},
}

const (
	minModelYear = 2000
	maxModelYear = 2025
)

// presetColors are the paint swatches offered before a free-form hex.
var presetColors = []string{
	"#FF0000",
	"#00FF00",
	"#0000FF",
	"#FFFF00",
	"#FFA500",
	"#800080",
	"#00FFFF",
	"#000000",
}

// Brands returns the buildable makes in display order.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// BrandByID resolves a make by its identifier.
func BrandByID(id string) (Brand, bool) {
	for _, brand := range brands {
		if brand.ID == id {
			return brand, true
		}
	}
	return Brand{}, false
}

// ModelsForBrand lists the buildable cars for the brand.
func ModelsForBrand(brandID string) ([]Model, bool) {
	models, ok := modelsByBrand[brandID]
	if !ok {
		return nil, false
	}
	out := make([]Model, len(models))
	copy(out, models)
	return out, true
}

// ModelByID resolves one car within a brand.
func ModelByID(brandID, modelID string) (Model, bool) {
	models, ok := modelsByBrand[brandID]
	if !ok {
		return Model{}, false
	}
	for _, model := range models {
		if model.ID == modelID {
			return model, true
		}
	}
	return Model{}, false
}

// Years lists the selectable model years, newest first.
func Years() []string {
	out := make([]string, 0, maxModelYear-minModelYear+1)
	for year := maxModelYear; year >= minModelYear; year-- {
		out = append(out, fmt.Sprintf("%d", year))
	}
	return out
}

// IsValidYear reports whether the year is within the selectable range.
func IsValidYear(year string) bool {
	for _, candidate := range Years() {
		if candidate == year {
			return true
		}
	}
	return false
}

// PresetColors returns the paint swatch hexes in display order.
func PresetColors() []string {
	out := make([]string, len(presetColors))
	copy(out, presetColors)
	return out
}

// DescriptiveColorName maps a hex code to its marketing name. Unknown
// hexes fall back to "<hex> Color" so every swatch stays identifiable.
func DescriptiveColorName(hex string) string {
	switch strings.ToUpper(hex) {
	case "#FF0000":
		return "Vibrant Red Metallic"
	case "#00FF00":
		return "Lime Green Gloss"
	case "#0000FF":
		return "Deep Sapphire Blue"
	case "#FFFF00":
		return "High-Vis Yellow"
	case "#FFA500":
		return "Burning Orange Pearl"
	case "#800080":
		return "Royal Purple"
	case "#00FFFF":
		return "Electric Cyan"
	case "#000000":
		return "Jet Black Matte"
	default:
		return fmt.Sprintf("%s Color", hex)
	}
}
