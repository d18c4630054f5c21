package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through its lifecycle
type OrderStatus string

const (
	OrderStatusQuote     OrderStatus = "quote"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// AllOrderStatuses returns all valid statuses for iteration
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusQuote,
		OrderStatusConfirmed,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// DisplayName returns human-readable name for the status
func (s OrderStatus) DisplayName() string {
	switch s {
	case OrderStatusQuote:
		return "Quote"
	case OrderStatusConfirmed:
		return "Confirmed"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Order represents a customer order or quote for an event
type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	OrderNumber string          `json:"order_number"` // e.g., "Q-1042"
	ContactID   uuid.UUID       `json:"contact_id"`
	EventDate   time.Time       `json:"event_date"`
	EventType   string          `json:"event_type"` // e.g., "Birthday", "Wedding"
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	DepositPaid bool            `json:"deposit_paid"`
	Status      OrderStatus     `json:"status"`
	Notes       string          `json:"notes"`
	ExpiryDate  time.Time       `json:"expiry_date"`

	// Metadata
	Source     string    `json:"source"` // "manual", "bake_diary_csv", "standard_csv"
	ImportedAt time.Time `json:"imported_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewOrder creates a new order with generated ID
func NewOrder(userID, contactID uuid.UUID, orderNumber string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:          uuid.New(),
		UserID:      userID,
		OrderNumber: orderNumber,
		ContactID:   contactID,
		Price:       decimal.Zero,
		Status:      OrderStatusQuote,
		Source:      "manual",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpired reports whether a quote has passed its expiry date
func (o *Order) IsExpired() bool {
	if o.Status != OrderStatusQuote || o.ExpiryDate.IsZero() {
		return false
	}
	return time.Now().UTC().After(o.ExpiryDate)
}

// IsUpcoming reports whether the event falls within the next n days
func (o *Order) IsUpcoming(days int) bool {
	if o.EventDate.IsZero() || o.Status == OrderStatusCancelled {
		return false
	}
	now := time.Now().UTC()
	return o.EventDate.After(now) && o.EventDate.Before(now.AddDate(0, 0, days))
}
