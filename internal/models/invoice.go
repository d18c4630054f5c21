package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice represents a bill raised against an order
type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	OrderID       uuid.UUID       `json:"order_id"`
	InvoiceNumber string          `json:"invoice_number"` // e.g., "INV-2025-0042"
	Amount        decimal.Decimal `json:"amount"`
	IssuedDate    time.Time       `json:"issued_date"`
	DueDate       time.Time       `json:"due_date"`
	Paid          bool            `json:"paid"`
	PaidDate      time.Time       `json:"paid_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewInvoice creates an invoice for an order, due 14 days from issue
func NewInvoice(userID, orderID uuid.UUID, sequence int, amount decimal.Decimal) *Invoice {
	now := time.Now().UTC()
	return &Invoice{
		ID:            uuid.New(),
		UserID:        userID,
		OrderID:       orderID,
		InvoiceNumber: fmt.Sprintf("INV-%d-%04d", now.Year(), sequence),
		Amount:        amount,
		IssuedDate:    now,
		DueDate:       now.AddDate(0, 0, 14),
		CreatedAt:     now,
	}
}

// IsOverdue reports whether an unpaid invoice is past its due date
func (i *Invoice) IsOverdue() bool {
	return !i.Paid && !i.DueDate.IsZero() && time.Now().UTC().After(i.DueDate)
}

// MarkPaid records payment at the current time
func (i *Invoice) MarkPaid() {
	i.Paid = true
	i.PaidDate = time.Now().UTC()
}
