package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

// ListInvoices returns all invoices for the current user
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	invoices, err := h.invoiceRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load invoices", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, invoices)
}

type invoiceInput struct {
	OrderID string `json:"order_id"`
	Amount  string `json:"amount"` // empty means the order price
}

// CreateInvoice raises an invoice against an order. The invoice number
// is sequential per user within the issue year.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input invoiceInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	orderID, err := uuid.Parse(input.OrderID)
	if err != nil {
		h.jsonError(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	order, err := h.orderRepo.GetByID(orderID)
	if err != nil || order == nil || order.UserID != user.ID {
		h.jsonError(w, "Order not found", http.StatusNotFound)
		return
	}

	amount := order.Price
	if input.Amount != "" {
		amount, err = decimal.NewFromString(input.Amount)
		if err != nil {
			h.jsonError(w, "Invalid amount", http.StatusBadRequest)
			return
		}
	}

	sequence, err := h.invoiceRepo.NextSequence(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to allocate invoice number", http.StatusInternalServerError)
		return
	}

	invoice := models.NewInvoice(user.ID, order.ID, sequence, amount)
	if err := h.invoiceRepo.Create(invoice); err != nil {
		h.jsonError(w, "Failed to create invoice", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, invoice, http.StatusCreated)
}

// GetInvoice returns one invoice
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid invoice ID", http.StatusBadRequest)
		return
	}

	invoice, err := h.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil || invoice.UserID != user.ID {
		h.jsonError(w, "Invoice not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, invoice)
}

// PayInvoice marks an invoice as paid
func (h *Handler) PayInvoice(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid invoice ID", http.StatusBadRequest)
		return
	}

	invoice, err := h.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil || invoice.UserID != user.ID {
		h.jsonError(w, "Invoice not found", http.StatusNotFound)
		return
	}
	if invoice.Paid {
		h.jsonError(w, "Invoice already paid", http.StatusConflict)
		return
	}

	invoice.MarkPaid()
	if err := h.invoiceRepo.Update(invoice); err != nil {
		h.jsonError(w, "Failed to update invoice", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, invoice)
}

// DeleteInvoice removes an invoice
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid invoice ID", http.StatusBadRequest)
		return
	}

	invoice, err := h.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil || invoice.UserID != user.ID {
		h.jsonError(w, "Invoice not found", http.StatusNotFound)
		return
	}

	if err := h.invoiceRepo.Delete(invoice.ID); err != nil {
		h.jsonError(w, "Failed to delete invoice", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]bool{"deleted": true})
}
