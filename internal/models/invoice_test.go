package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewInvoice_NumberFormat(t *testing.T) {
	inv := NewInvoice(uuid.New(), uuid.New(), 42, decimal.NewFromInt(100))

	want := fmt.Sprintf("INV-%d-0042", time.Now().UTC().Year())
	if inv.InvoiceNumber != want {
		t.Errorf("InvoiceNumber = %q, want %q", inv.InvoiceNumber, want)
	}
	if !inv.DueDate.Equal(inv.IssuedDate.AddDate(0, 0, 14)) {
		t.Errorf("DueDate = %v, want 14 days after %v", inv.DueDate, inv.IssuedDate)
	}
}

func TestInvoice_IsOverdue(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name     string
		paid     bool
		due      time.Time
		expected bool
	}{
		{"Unpaid past due", false, now.AddDate(0, 0, -1), true},
		{"Unpaid before due", false, now.AddDate(0, 0, 7), false},
		{"Paid past due", true, now.AddDate(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInvoice(uuid.New(), uuid.New(), 1, decimal.NewFromInt(50))
			inv.Paid = tt.paid
			inv.DueDate = tt.due

			if got := inv.IsOverdue(); got != tt.expected {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.expected)
			}
		})
	}
}
