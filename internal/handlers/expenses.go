package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

// ListExpenses returns all expenses for the current user
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	expenses, err := h.expenseRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load expenses", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, expenses)
}

type expenseInput struct {
	Vendor      string `json:"vendor"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	VATAmount   string `json:"vat_amount"`
	IncurredOn  string `json:"incurred_on"` // "2006-01-02"
	Paid        bool   `json:"paid"`
}

func (in *expenseInput) apply(e *models.Expense) error {
	if in.Amount != "" {
		a, err := decimal.NewFromString(in.Amount)
		if err != nil {
			return err
		}
		e.Amount = a
	}
	if in.VATAmount != "" {
		v, err := decimal.NewFromString(in.VATAmount)
		if err != nil {
			return err
		}
		e.VATAmount = v
	}
	if in.IncurredOn != "" {
		d, err := time.Parse("2006-01-02", in.IncurredOn)
		if err != nil {
			return err
		}
		e.IncurredOn = d
	}
	e.Description = in.Description
	e.Category = in.Category
	e.Paid = in.Paid
	return nil
}

// CreateExpense records an expense for the current user
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input expenseInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Vendor) == "" {
		h.jsonError(w, "Vendor is required", http.StatusBadRequest)
		return
	}

	expense := models.NewExpense(user.ID, strings.TrimSpace(input.Vendor), decimal.Zero)
	if err := input.apply(expense); err != nil {
		h.jsonError(w, "Invalid field value: "+err.Error(), http.StatusBadRequest)
		return
	}
	if expense.IncurredOn.IsZero() {
		expense.IncurredOn = time.Now().UTC()
	}

	if err := h.expenseRepo.Create(expense); err != nil {
		h.jsonError(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, expense, http.StatusCreated)
}

// GetExpense returns one expense
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid expense ID", http.StatusBadRequest)
		return
	}

	expense, err := h.expenseRepo.GetByID(id)
	if err != nil || expense == nil || expense.UserID != user.ID {
		h.jsonError(w, "Expense not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, expense)
}

// UpdateExpense updates an expense
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid expense ID", http.StatusBadRequest)
		return
	}

	expense, err := h.expenseRepo.GetByID(id)
	if err != nil || expense == nil || expense.UserID != user.ID {
		h.jsonError(w, "Expense not found", http.StatusNotFound)
		return
	}

	var input expenseInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Vendor) != "" {
		expense.Vendor = strings.TrimSpace(input.Vendor)
	}
	if err := input.apply(expense); err != nil {
		h.jsonError(w, "Invalid field value: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.expenseRepo.Update(expense); err != nil {
		h.jsonError(w, "Failed to update expense", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, expense)
}

// DeleteExpense removes an expense
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid expense ID", http.StatusBadRequest)
		return
	}

	expense, err := h.expenseRepo.GetByID(id)
	if err != nil || expense == nil || expense.UserID != user.ID {
		h.jsonError(w, "Expense not found", http.StatusNotFound)
		return
	}

	if err := h.expenseRepo.Delete(expense.ID); err != nil {
		h.jsonError(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]bool{"deleted": true})
}
