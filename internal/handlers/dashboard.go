package handlers

import (
	"net/http"

	"github.com/lilybakes/ovenbook/internal/middleware"
)

// Dashboard renders the main dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.redirect(w, r, "/login")
		return
	}

	orders, err := h.orderRepo.GetByUserID(user.ID)
	if err != nil {
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}
	expenses, err := h.expenseRepo.GetByUserID(user.ID)
	if err != nil {
		http.Error(w, "Failed to load expenses", http.StatusInternalServerError)
		return
	}
	invoices, err := h.invoiceRepo.GetByUserID(user.ID)
	if err != nil {
		http.Error(w, "Failed to load invoices", http.StatusInternalServerError)
		return
	}

	summary := h.reporting.Summarize(orders, expenses, invoices)
	revenue := h.reporting.RevenueByMonth(orders)

	data := map[string]interface{}{
		"Title":   "Dashboard - Ovenbook",
		"User":    user,
		"Summary": summary,
		"Revenue": revenue,
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	h.render(w, "dashboard.html", data)
}

// APIDashboardSummary returns the dashboard numbers as JSON
func (h *Handler) APIDashboardSummary(w http.ResponseWriter, r *http.Request) {
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
	expenses, err := h.expenseRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load expenses", http.StatusInternalServerError)
		return
	}
	invoices, err := h.invoiceRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load invoices", http.StatusInternalServerError)
		return
	}

	h.jsonOK(w, map[string]interface{}{
		"summary":              h.reporting.Summarize(orders, expenses, invoices),
		"revenue_by_month":     h.reporting.RevenueByMonth(orders),
		"expenses_by_category": h.reporting.ExpensesByCategory(expenses),
	})
}
