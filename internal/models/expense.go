package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a supplier purchase or running cost
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Vendor      string          `json:"vendor"`
	Description string          `json:"description"`
	Category    string          `json:"category"` // "ingredients", "equipment", "utilities"
	Amount      decimal.Decimal `json:"amount"`   // inclusive of VAT where charged
	VATAmount   decimal.Decimal `json:"vat_amount"`
	IncurredOn  time.Time       `json:"incurred_on"`
	Paid        bool            `json:"paid"`

	// ContentHash deduplicates re-imported rows that carry no natural key.
	ContentHash string `json:"-"`

	Source     string    `json:"source"` // "manual", "standard_csv"
	ImportedAt time.Time `json:"imported_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewExpense creates a new expense with generated ID
func NewExpense(userID uuid.UUID, vendor string, amount decimal.Decimal) *Expense {
	return &Expense{
		ID:        uuid.New(),
		UserID:    userID,
		Vendor:    vendor,
		Amount:    amount,
		VATAmount: decimal.Zero,
		Source:    "manual",
		CreatedAt: time.Now().UTC(),
	}
}

// NetAmount returns the amount excluding VAT
func (e *Expense) NetAmount() decimal.Decimal {
	return e.Amount.Sub(e.VATAmount)
}
