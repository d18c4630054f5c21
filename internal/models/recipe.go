package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is one line of a recipe
type Ingredient struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"` // "g", "ml", "each"
	Cost     decimal.Decimal `json:"cost"`
}

// Recipe represents a costed bakery recipe
type Recipe struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Name        string       `json:"name"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	Method      string       `json:"method"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewRecipe creates a new recipe with generated ID
func NewRecipe(userID uuid.UUID, name string, servings int) *Recipe {
	now := time.Now().UTC()
	return &Recipe{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Servings:    servings,
		Ingredients: []Ingredient{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// BatchCost returns the total ingredient cost for one batch
func (r *Recipe) BatchCost() decimal.Decimal {
	total := decimal.Zero
	for _, ing := range r.Ingredients {
		total = total.Add(ing.Cost)
	}
	return total
}

// CostPerServing returns the ingredient cost per serving, rounded to cents
func (r *Recipe) CostPerServing() decimal.Decimal {
	if r.Servings <= 0 {
		return decimal.Zero
	}
	return r.BatchCost().Div(decimal.NewFromInt(int64(r.Servings))).Round(2)
}
