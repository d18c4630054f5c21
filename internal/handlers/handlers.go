// Package handlers provides HTTP request handlers
package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/config"
	"github.com/lilybakes/ovenbook/internal/services/auth"
	"github.com/lilybakes/ovenbook/internal/services/importer"
	"github.com/lilybakes/ovenbook/internal/services/reporting"
	"github.com/lilybakes/ovenbook/internal/storage"
	"github.com/shopspring/decimal"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg           *config.Config
	templates     *template.Template
	authService   *auth.Service
	importService *importer.Service
	reporting     *reporting.Service
	userRepo      *storage.UserRepository
	contactRepo   *storage.ContactRepository
	orderRepo     *storage.OrderRepository
	recipeRepo    *storage.RecipeRepository
	invoiceRepo   *storage.InvoiceRepository
	expenseRepo   *storage.ExpenseRepository
}

// New creates a new handler with all dependencies
func New(
	cfg *config.Config,
	templateDir string,
	authService *auth.Service,
	importService *importer.Service,
	reportingService *reporting.Service,
	userRepo *storage.UserRepository,
	contactRepo *storage.ContactRepository,
	orderRepo *storage.OrderRepository,
	recipeRepo *storage.RecipeRepository,
	invoiceRepo *storage.InvoiceRepository,
	expenseRepo *storage.ExpenseRepository,
) (*Handler, error) {
	tmpl, err := parseTemplates(templateDir)
	if err != nil {
		return nil, err
	}

	return &Handler{
		cfg:           cfg,
		templates:     tmpl,
		authService:   authService,
		importService: importService,
		reporting:     reportingService,
		userRepo:      userRepo,
		contactRepo:   contactRepo,
		orderRepo:     orderRepo,
		recipeRepo:    recipeRepo,
		invoiceRepo:   invoiceRepo,
		expenseRepo:   expenseRepo,
	}, nil
}

func parseTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs())

	layouts, _ := filepath.Glob(filepath.Join(dir, "layouts", "*.html"))
	for _, f := range layouts {
		if _, err := tmpl.ParseFiles(f); err != nil {
			return nil, err
		}
	}

	pages, _ := filepath.Glob(filepath.Join(dir, "pages", "*.html"))
	for _, f := range pages {
		if _, err := tmpl.ParseFiles(f); err != nil {
			return nil, err
		}
	}

	return tmpl, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatMoney": formatMoney,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
	}
}

func formatMoney(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}

// render renders a template with the given data
func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// redirect performs an HTTP redirect
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// jsonOK writes a JSON response with status 200
func (h *Handler) jsonOK(w http.ResponseWriter, data interface{}) {
	h.writeJSON(w, data, http.StatusOK)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// jsonError writes a JSON error response
func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, map[string]string{"error": message}, status)
}

// decodeJSON decodes a JSON request body into dst
func (h *Handler) decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathID extracts a trailing UUID from URLs like /api/orders/{id}
func pathID(r *http.Request) (uuid.UUID, bool) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 0 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[len(parts)-1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
