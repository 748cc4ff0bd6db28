package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/internal/cart"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/types"
)

// OptionSelection is one picked customization. Color selections use a
// hex-derived ID so replacing a color swaps the single color slot.
type OptionSelection struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Category enums.OptionCategory `json:"category"`
	Hex      string               `json:"hex,omitempty"`
	Price    decimal.Decimal      `json:"price"`
}

// Session is one user's in-progress custom build. It lives in Redis and
// follows the brand > model > year > options flow; changing an earlier
// step resets everything after it.
type Session struct {
	UserID    string            `json:"userId"`
	BrandID   string            `json:"brandId,omitempty"`
	BrandName string            `json:"brandName,omitempty"`
	ModelID   string            `json:"modelId,omitempty"`
	ModelName string            `json:"modelName,omitempty"`
	Year      string            `json:"year,omitempty"`
	Options   []OptionSelection `json:"options"`
	ImageURL  *string           `json:"imageUrl,omitempty"`
	ImageSeq  int64             `json:"imageSeq"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewSession starts an empty build for the user.
func NewSession(userID string) *Session {
	return &Session{UserID: userID, Options: []OptionSelection{}}
}

// SelectBrand sets the make and resets every later step.
func (s *Session) SelectBrand(brandID string) error {
	brand, ok := BrandByID(brandID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown brand %q", brandID))
	}
	if s.BrandID == brand.ID {
		return nil
	}
	s.BrandID = brand.ID
	s.BrandName = brand.Name
	s.ModelID = ""
	s.ModelName = ""
	s.resetFromYear()
	return nil
}

// SelectModel sets the car and resets the year and everything after it.
func (s *Session) SelectModel(modelID string) error {
	if s.BrandID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a brand first")
	}
	model, ok := ModelByID(s.BrandID, modelID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown model %q for brand %q", modelID, s.BrandID))
	}
	if s.ModelID == model.ID {
		return nil
	}
	s.ModelID = model.ID
	s.ModelName = model.Name
	s.resetFromYear()
	return nil
}

// SelectYear sets the model year. Re-picking the year restarts the
// customization steps after it.
func (s *Session) SelectYear(year string) error {
	if s.ModelID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a model first")
	}
	if !IsValidYear(year) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown model year %q", year))
	}
	if s.Year == year {
		return nil
	}
	s.Year = year
	s.Options = []OptionSelection{}
	s.ImageURL = nil
	return nil
}

// AddOption applies one customization respecting the category's
// cardinality: exclusive categories replace the previous pick, additive
// categories append with duplicates ignored.
func (s *Session) AddOption(selection OptionSelection) error {
	if s.ModelID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a model first")
	}
	if !selection.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown option category %q", selection.Category))
	}

	switch selection.Category.Cardinality() {
	case enums.CardinalityExclusive:
		kept := s.Options[:0]
		for _, existing := range s.Options {
			if existing.Category != selection.Category {
				kept = append(kept, existing)
			}
		}
		s.Options = append(kept, selection)
	default:
		for _, existing := range s.Options {
			if existing.ID == selection.ID {
				// Duplicate pick is a no-op.
				return nil
			}
		}
		s.Options = append(s.Options, selection)
	}
	s.ImageURL = nil
	return nil
}

// RemoveOption drops one selection by ID. Unknown IDs are a no-op.
func (s *Session) RemoveOption(optionID string) {
	for i, existing := range s.Options {
		if existing.ID == optionID {
			s.Options = append(s.Options[:i], s.Options[i+1:]...)
			s.ImageURL = nil
			return
		}
	}
}

// SelectedColor returns the current color pick, if any.
func (s *Session) SelectedColor() *OptionSelection {
	for i := range s.Options {
		if s.Options[i].Category == enums.OptionCategoryColor {
			return &s.Options[i]
		}
	}
	return nil
}

// RunningTotal sums the selected option prices.
func (s *Session) RunningTotal() decimal.Decimal {
	total := decimal.Zero
	for _, option := range s.Options {
		total = total.Add(option.Price)
	}
	return total
}

// ReadyForPreview reports whether enough is selected to render an image.
func (s *Session) ReadyForPreview() bool {
	return s.ModelID != "" && s.Year != ""
}

// Materialize converts the finished build into a custom cart item. The
// item name is "<Brand> <Model>" and the unit price is the running total.
func (s *Session) Materialize() (*cart.CustomItemInput, error) {
	if s.ModelID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "select a model before adding to cart")
	}

	details := make(types.CustomDetails, 0, len(s.Options))
	for _, option := range s.Options {
		details = append(details, types.CustomDetail{
			Label: capitalize(option.Category.String()),
			Value: option.Name,
			Price: option.Price,
		})
	}

	return &cart.CustomItemInput{
		Name:    fmt.Sprintf("%s %s", s.BrandName, s.ModelName),
		Price:   s.RunningTotal(),
		Image:   s.ImageURL,
		Details: details,
	}, nil
}

// Reset clears the whole build back to an empty session.
func (s *Session) Reset() {
	s.BrandID = ""
	s.BrandName = ""
	s.ModelID = ""
	s.ModelName = ""
	s.resetFromYear()
}

func (s *Session) resetFromYear() {
	s.Year = ""
	s.Options = []OptionSelection{}
	s.ImageURL = nil
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
