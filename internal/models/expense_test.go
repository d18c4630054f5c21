package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewExpense_Defaults(t *testing.T) {
	e := NewExpense(uuid.New(), "Flour Mill Ltd", decimal.NewFromFloat(12.50))

	if e.Source != "manual" {
		t.Errorf("Source = %q, want %q", e.Source, "manual")
	}
	if !e.VATAmount.IsZero() {
		t.Errorf("VATAmount = %s, want 0", e.VATAmount)
	}
	if e.ContentHash != "" {
		t.Errorf("ContentHash = %q, want empty for manual expenses", e.ContentHash)
	}
}

func TestExpense_NetAmount(t *testing.T) {
	e := NewExpense(uuid.New(), "Flour Mill Ltd", decimal.NewFromFloat(120.00))
	e.VATAmount = decimal.NewFromFloat(20.00)

	expected := decimal.NewFromFloat(100.00)
	if got := e.NetAmount(); !got.Equal(expected) {
		t.Errorf("NetAmount() = %s, want %s", got, expected)
	}
}
