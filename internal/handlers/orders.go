package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

// ListOrders returns all orders for the current user
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.orderRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, orders)
}

type orderInput struct {
	OrderNumber string `json:"order_number"`
	ContactID   string `json:"contact_id"`
	EventDate   string `json:"event_date"` // "2006-01-02"
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	Price       string `json:"price"`
	DepositPaid bool   `json:"deposit_paid"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	ExpiryDate  string `json:"expiry_date"`
}

func (in *orderInput) apply(o *models.Order) error {
	if in.EventDate != "" {
		d, err := time.Parse("2006-01-02", in.EventDate)
		if err != nil {
			return err
		}
		o.EventDate = d
	}
	if in.ExpiryDate != "" {
		d, err := time.Parse("2006-01-02", in.ExpiryDate)
		if err != nil {
			return err
		}
		o.ExpiryDate = d
	}
	if in.Price != "" {
		p, err := decimal.NewFromString(in.Price)
		if err != nil {
			return err
		}
		o.Price = p
	}
	if in.Status != "" {
		status := models.OrderStatus(strings.ToLower(in.Status))
		for _, valid := range models.AllOrderStatuses() {
			if status == valid {
				o.Status = status
				break
			}
		}
	}
	o.EventType = in.EventType
	o.Description = in.Description
	o.DepositPaid = in.DepositPaid
	o.Notes = in.Notes
	return nil
}

// CreateOrder creates an order for the current user
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input orderInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.OrderNumber) == "" {
		h.jsonError(w, "Order number is required", http.StatusBadRequest)
		return
	}

	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		h.jsonError(w, "Invalid contact ID", http.StatusBadRequest)
		return
	}
	contact, err := h.contactRepo.GetByID(contactID)
	if err != nil || contact == nil || contact.UserID != user.ID {
		h.jsonError(w, "Contact not found", http.StatusNotFound)
		return
	}

	if existing, err := h.orderRepo.GetByOrderNumber(user.ID, strings.TrimSpace(input.OrderNumber)); err == nil && existing != nil {
		h.jsonError(w, "Order number already in use", http.StatusConflict)
		return
	}

	order := models.NewOrder(user.ID, contactID, strings.TrimSpace(input.OrderNumber))
	if err := input.apply(order); err != nil {
		h.jsonError(w, "Invalid field value: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.orderRepo.Create(order); err != nil {
		h.jsonError(w, "Failed to create order", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, order, http.StatusCreated)
}

// GetOrder returns one order
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil || order == nil || order.UserID != user.ID {
		h.jsonError(w, "Order not found", http.StatusNotFound)
		return
	}

	invoices, err := h.invoiceRepo.GetByOrderID(order.ID)
	if err != nil {
		h.jsonError(w, "Failed to load invoices", http.StatusInternalServerError)
		return
	}

	h.jsonOK(w, map[string]interface{}{
		"order":    order,
		"invoices": invoices,
	})
}

// UpdateOrder updates an order
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil || order == nil || order.UserID != user.ID {
		h.jsonError(w, "Order not found", http.StatusNotFound)
		return
	}

	var input orderInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := input.apply(order); err != nil {
		h.jsonError(w, "Invalid field value: "+err.Error(), http.StatusBadRequest)
		return
	}
	order.UpdatedAt = time.Now().UTC()

	if err := h.orderRepo.Update(order); err != nil {
		h.jsonError(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, order)
}

// DeleteOrder removes an order
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil || order == nil || order.UserID != user.ID {
		h.jsonError(w, "Order not found", http.StatusNotFound)
		return
	}

	if err := h.orderRepo.Delete(order.ID); err != nil {
		h.jsonError(w, "Failed to delete order", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]bool{"deleted": true})
}
