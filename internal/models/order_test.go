package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewOrder_Defaults(t *testing.T) {
	order := NewOrder(uuid.New(), uuid.New(), "Q-1")

	if order.Status != OrderStatusQuote {
		t.Errorf("Status: got %s, want %s", order.Status, OrderStatusQuote)
	}
	if !order.Price.IsZero() {
		t.Errorf("Price: got %s, want 0", order.Price)
	}
	if order.Source != "manual" {
		t.Errorf("Source: got %s, want manual", order.Source)
	}
}

func TestOrder_IsExpired(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name     string
		status   OrderStatus
		expiry   time.Time
		expected bool
	}{
		{"Quote past expiry", OrderStatusQuote, now.AddDate(0, 0, -1), true},
		{"Quote before expiry", OrderStatusQuote, now.AddDate(0, 0, 7), false},
		{"Quote with no expiry", OrderStatusQuote, time.Time{}, false},
		{"Confirmed order never expires", OrderStatusConfirmed, now.AddDate(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrder(uuid.New(), uuid.New(), "Q-1")
			o.Status = tt.status
			o.ExpiryDate = tt.expiry

			if got := o.IsExpired(); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOrder_IsUpcoming(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		eventDate time.Time
		status    OrderStatus
		days      int
		expected  bool
	}{
		{"Event next week within 14 days", now.AddDate(0, 0, 7), OrderStatusConfirmed, 14, true},
		{"Event next month outside 14 days", now.AddDate(0, 1, 0), OrderStatusConfirmed, 14, false},
		{"Past event", now.AddDate(0, 0, -7), OrderStatusConfirmed, 14, false},
		{"Cancelled order excluded", now.AddDate(0, 0, 7), OrderStatusCancelled, 14, false},
		{"No event date", time.Time{}, OrderStatusConfirmed, 14, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrder(uuid.New(), uuid.New(), "Q-1")
			o.EventDate = tt.eventDate
			o.Status = tt.status

			if got := o.IsUpcoming(tt.days); got != tt.expected {
				t.Errorf("IsUpcoming(%d) = %v, want %v", tt.days, got, tt.expected)
			}
		})
	}
}

func TestOrderStatus_DisplayName(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		expected string
	}{
		{OrderStatusQuote, "Quote"},
		{OrderStatusConfirmed, "Confirmed"},
		{OrderStatusCompleted, "Completed"},
		{OrderStatusCancelled, "Cancelled"},
		{OrderStatus("weird"), "weird"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.DisplayName(); got != tt.expected {
				t.Errorf("DisplayName() = %q, want %q", got, tt.expected)
			}
		})
	}
}
