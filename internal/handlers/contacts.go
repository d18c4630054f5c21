package handlers

import (
	"net/http"
	"strings"

	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/models"
)

// ListContacts returns all contacts for the current user
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	contacts, err := h.contactRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load contacts", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, contacts)
}

type contactInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// CreateContact creates a contact for the current user
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input contactInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.FirstName) == "" {
		h.jsonError(w, "First name is required", http.StatusBadRequest)
		return
	}

	contact := models.NewContact(user.ID, strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName))
	contact.Email = strings.TrimSpace(input.Email)
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.Notes = input.Notes

	if err := h.contactRepo.Create(contact); err != nil {
		h.jsonError(w, "Failed to create contact", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, contact, http.StatusCreated)
}

// GetContact returns one contact with their orders
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid contact ID", http.StatusBadRequest)
		return
	}

	contact, err := h.contactRepo.GetByID(id)
	if err != nil || contact == nil || contact.UserID != user.ID {
		h.jsonError(w, "Contact not found", http.StatusNotFound)
		return
	}

	orders, err := h.orderRepo.GetByContactID(contact.ID)
	if err != nil {
		h.jsonError(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}

	h.jsonOK(w, map[string]interface{}{
		"contact": contact,
		"orders":  orders,
	})
}

// UpdateContact updates a contact's details
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid contact ID", http.StatusBadRequest)
		return
	}

	contact, err := h.contactRepo.GetByID(id)
	if err != nil || contact == nil || contact.UserID != user.ID {
		h.jsonError(w, "Contact not found", http.StatusNotFound)
		return
	}

	var input contactInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.FirstName) == "" {
		h.jsonError(w, "First name is required", http.StatusBadRequest)
		return
	}

	contact.FirstName = strings.TrimSpace(input.FirstName)
	contact.LastName = strings.TrimSpace(input.LastName)
	contact.Email = strings.TrimSpace(input.Email)
	contact.Phone = strings.TrimSpace(input.Phone)
	contact.Notes = input.Notes

	if err := h.contactRepo.Update(contact); err != nil {
		h.jsonError(w, "Failed to update contact", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, contact)
}

// DeleteContact removes a contact
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid contact ID", http.StatusBadRequest)
		return
	}

	contact, err := h.contactRepo.GetByID(id)
	if err != nil || contact == nil || contact.UserID != user.ID {
		h.jsonError(w, "Contact not found", http.StatusNotFound)
		return
	}

	if err := h.contactRepo.Delete(contact.ID); err != nil {
		h.jsonError(w, "Failed to delete contact", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]bool{"deleted": true})
}
