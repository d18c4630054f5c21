package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestRecipe_BatchCost(t *testing.T) {
	r := NewRecipe(uuid.New(), "Victoria Sponge", 12)
	r.Ingredients = []Ingredient{
		{Name: "Flour", Quantity: decimal.NewFromInt(500), Unit: "g", Cost: decimal.NewFromFloat(0.45)},
		{Name: "Butter", Quantity: decimal.NewFromInt(250), Unit: "g", Cost: decimal.NewFromFloat(2.10)},
		{Name: "Eggs", Quantity: decimal.NewFromInt(4), Unit: "each", Cost: decimal.NewFromFloat(1.20)},
	}

	expected := decimal.NewFromFloat(3.75)
	if got := r.BatchCost(); !got.Equal(expected) {
		t.Errorf("BatchCost() = %s, want %s", got, expected)
	}
}

func TestRecipe_CostPerServing(t *testing.T) {
	tests := []struct {
		name     string
		servings int
		cost     float64
		expected string
	}{
		{"Twelve servings", 12, 3.60, "0.3"},
		{"Rounds to cents", 3, 1.00, "0.33"},
		{"Zero servings", 0, 5.00, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecipe(uuid.New(), "Test", tt.servings)
			r.Ingredients = []Ingredient{{Name: "Flour", Cost: decimal.NewFromFloat(tt.cost)}}

			if got := r.CostPerServing(); got.String() != tt.expected {
				t.Errorf("CostPerServing() = %s, want %s", got, tt.expected)
			}
		})
	}
}
