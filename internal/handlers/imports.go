package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/services/importer"
)

// ImportPage renders the CSV import page
func (h *Handler) ImportPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.redirect(w, r, "/login")
		return
	}

	data := map[string]interface{}{
		"Title":   "Import - Ovenbook",
		"User":    user,
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	h.render(w, "import.html", data)
}

type importResponse struct {
	Success      bool                  `json:"success"`
	SuccessCount int                   `json:"successCount"`
	ErrorCount   int                   `json:"errorCount"`
	Errors       []importer.RowFailure `json:"errors,omitempty"`
	Message      string                `json:"message"`
}

// ImportCSV handles a CSV file upload and runs the import batch
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	raw, entity, overrides, ok := h.readImportUpload(w, r)
	if !ok {
		return
	}

	summary, err := h.importService.Run(r.Context(), raw, importer.Options{
		Entity:    entity,
		UserID:    user.ID,
		Overrides: overrides,
	})
	if err != nil {
		var mapErr *importer.MappingError
		switch {
		case errors.Is(err, importer.ErrMalformedFile):
			h.jsonError(w, "Could not find a header row in this file", http.StatusUnprocessableEntity)
		case errors.As(err, &mapErr):
			h.jsonError(w, mapErr.Error(), http.StatusUnprocessableEntity)
		default:
			h.jsonError(w, "Import failed", http.StatusInternalServerError)
		}
		return
	}

	h.jsonOK(w, importResponse{
		Success:      summary.ErrorCount == 0,
		SuccessCount: summary.SuccessCount,
		ErrorCount:   summary.ErrorCount,
		Errors:       summary.Failures(),
		Message:      summary.Message(),
	})
}

// PreviewImport returns the detected layout and proposed column mapping
// without committing any rows.
func (h *Handler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	raw, entity, _, ok := h.readImportUpload(w, r)
	if !ok {
		return
	}

	preview, err := h.importService.Preview(raw, entity)
	if err != nil {
		if errors.Is(err, importer.ErrMalformedFile) {
			h.jsonError(w, "Could not find a header row in this file", http.StatusUnprocessableEntity)
			return
		}
		h.jsonError(w, "Preview failed", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, preview)
}

// readImportUpload pulls the CSV payload, entity type, and optional
// mapping overrides out of a multipart upload.
func (h *Handler) readImportUpload(w http.ResponseWriter, r *http.Request) (string, importer.EntityType, map[string]string, bool) {
	if err := r.ParseMultipartForm(h.cfg.MaxImportBytes); err != nil {
		h.jsonError(w, "File too large", http.StatusRequestEntityTooLarge)
		return "", "", nil, false
	}

	entity := importer.EntityType(r.FormValue("entity"))
	switch entity {
	case importer.EntityOrders, importer.EntityExpenses:
	case "":
		entity = importer.EntityOrders
	default:
		h.jsonError(w, "Unknown entity type", http.StatusBadRequest)
		return "", "", nil, false
	}

	var overrides map[string]string
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			h.jsonError(w, "Invalid mapping overrides", http.StatusBadRequest)
			return "", "", nil, false
		}
	}

	file, _, err := r.FormFile("csv_file")
	if err != nil {
		h.jsonError(w, "No file uploaded", http.StatusBadRequest)
		return "", "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxImportBytes))
	if err != nil {
		h.jsonError(w, "Failed to read file", http.StatusInternalServerError)
		return "", "", nil, false
	}

	return string(data), entity, overrides, true
}

// DownloadTemplate serves a sample CSV for the requested entity type
func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=ovenbook_template.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if importer.EntityType(r.URL.Query().Get("entity")) == importer.EntityExpenses {
		writer.Write([]string{"Vendor", "Amount (Inc VAT)", "Date", "Description", "VAT", "Category", "Paid"})
		writer.Write([]string{"Flour Co", "12.50", "01/05/2025", "Bread flour 25kg", "2.08", "ingredients", "yes"})
		writer.Write([]string{"Kitchen Kit", "150.00", "03/05/2025", "Stand mixer bowl", "25.00", "equipment", "no"})
		return
	}

	writer.Write([]string{"Order Number", "Contact", "Event Date", "Event Type", "Theme", "Order Total", "Status", "Notes"})
	writer.Write([]string{"Q-1001", "Jane Doe", "19/05/2025", "Birthday", "Unicorn", "45.00", "confirmed", "Collect 2pm"})
	writer.Write([]string{"Q-1002", "Amy Lee", "24/05/2025", "Wedding", "Rustic tiers", "320.00", "quote", ""})
}
