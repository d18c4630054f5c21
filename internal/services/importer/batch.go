package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/zeebo/xxh3"
)

// OrderStore is the slice of order persistence the pipeline needs
type OrderStore interface {
	UpsertByOrderNumber(o *models.Order) error
}

// ExpenseStore is the slice of expense persistence the pipeline needs
type ExpenseStore interface {
	UpsertByContentHash(e *models.Expense) error
}

// Service drives the import pipeline: tokenize once, detect the layout
// once, map columns once, then run every data row through coercion,
// resolution, and persistence, collecting one outcome per row.
type Service struct {
	contacts ContactStore
	orders   OrderStore
	expenses ExpenseStore
}

// NewService creates an import service over the given stores
func NewService(contacts ContactStore, orders OrderStore, expenses ExpenseStore) *Service {
	return &Service{
		contacts: contacts,
		orders:   orders,
		expenses: expenses,
	}
}

// Options configure one import batch. UserID scopes every lookup and
// write; there is no implicit default tenant.
type Options struct {
	Entity    EntityType
	UserID    uuid.UUID
	Overrides map[string]string // caller edits to the proposed mapping
}

// RowFailure is the per-row error detail surfaced to the caller
type RowFailure struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary aggregates the per-row outcomes of one batch
type ImportSummary struct {
	SuccessCount int
	ErrorCount   int
	Outcomes     []ImportOutcome
}

// Failures returns the failed outcomes as row/message pairs
func (s *ImportSummary) Failures() []RowFailure {
	var failures []RowFailure
	for _, o := range s.Outcomes {
		if o.Failed() {
			failures = append(failures, RowFailure{Row: o.Row, Message: o.Error})
		}
	}
	return failures
}

// Message returns the human-readable one-line result
func (s *ImportSummary) Message() string {
	return fmt.Sprintf("Successfully imported %d. %d failed.", s.SuccessCount, s.ErrorCount)
}

// Preview is what the caller shows the user before committing a batch.
// Required names the fields the mapping must cover before Run will accept
// the batch.
type Preview struct {
	Layout     *HeaderLayout `json:"layout"`
	Mapping    ColumnMapping `json:"mapping"`
	Required   []string      `json:"required"`
	SampleRows [][]string    `json:"sampleRows"`
	RowCount   int           `json:"rowCount"`
}

// Preview tokenizes and detects without committing anything, returning
// the proposed mapping for the user to review and override.
func (s *Service) Preview(raw string, entity EntityType) (*Preview, error) {
	rows := Tokenize(raw)
	layout, err := DetectLayout(rows)
	if err != nil {
		return nil, err
	}

	dataRows := rows[layout.HeaderRow+1:]
	sample := dataRows
	if len(sample) > 5 {
		sample = sample[:5]
	}

	fields := FieldsFor(entity)
	return &Preview{
		Layout:     layout,
		Mapping:    ProposeMapping(layout.Columns, fields),
		Required:   RequiredFields(fields),
		SampleRows: sample,
		RowCount:   len(dataRows),
	}, nil
}

// Run executes one import batch. Structural and mapping problems abort
// with an error before any row is attempted; row-level problems become
// failure outcomes and the batch continues. Rows are processed in order
// and each committed row is final regardless of later failures. When ctx
// is cancelled mid-batch, no further rows are issued and the partial
// summary accumulated so far is returned.
func (s *Service) Run(ctx context.Context, raw string, opts Options) (*ImportSummary, error) {
	rows := Tokenize(raw)
	layout, err := DetectLayout(rows)
	if err != nil {
		return nil, err
	}

	fields := FieldsFor(opts.Entity)
	mapping := ProposeMapping(layout.Columns, fields)
	mapping.Apply(opts.Overrides)
	if missing := mapping.MissingRequired(fields); len(missing) > 0 {
		return nil, &MappingError{Missing: missing}
	}

	ri := &rowImporter{
		layout:   layout,
		mapping:  mapping,
		fields:   fields,
		resolver: NewContactResolver(s.contacts),
		persist:  s.persisterFor(opts.Entity),
		userID:   opts.UserID,
	}

	summary := &ImportSummary{}
	for i, cells := range rows[layout.HeaderRow+1:] {
		select {
		case <-ctx.Done():
			return summary, nil
		default:
		}

		outcome := ri.importRow(cells, i+1)
		if outcome.Failed() {
			summary.ErrorCount++
		} else {
			summary.SuccessCount++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary, nil
}

func (s *Service) persisterFor(entity EntityType) persistFunc {
	if entity == EntityExpenses {
		return s.persistExpense
	}
	return s.persistOrder
}

// persistOrder upserts on the order number, the natural key, so
// re-importing the same file updates rows in place.
func (s *Service) persistOrder(userID uuid.UUID, rec CanonicalRecord, format Format) (string, error) {
	order := models.NewOrder(userID, rec.Contact("contact_name").ID, rec.Text("order_number"))
	order.EventDate = rec.Date("event_date")
	order.EventType = rec.Text("event_type")
	order.Description = rec.Text("description")
	order.Price = rec.Amount("price")
	order.Status = orderStatusFrom(rec.Text("status"))
	order.Notes = rec.Text("notes")
	order.ExpiryDate = rec.Date("expiry_date")
	order.Source = string(format)
	order.ImportedAt = time.Now().UTC()

	if err := s.orders.UpsertByOrderNumber(order); err != nil {
		return "", err
	}
	return order.ID.String(), nil
}

// persistExpense has no natural key to upsert on; a hash of the
// canonical content stands in for one, so re-importing the same file
// dedups instead of duplicating.
func (s *Service) persistExpense(userID uuid.UUID, rec CanonicalRecord, format Format) (string, error) {
	expense := models.NewExpense(userID, rec.Text("vendor"), rec.Amount("amount"))
	expense.Description = rec.Text("description")
	expense.Category = rec.Text("category")
	expense.VATAmount = rec.Amount("vat_amount")
	expense.IncurredOn = rec.Date("date")
	expense.Paid = rec.Bool("paid")
	expense.ContentHash = expenseContentHash(expense)
	expense.Source = string(format)
	expense.ImportedAt = time.Now().UTC()

	if err := s.expenses.UpsertByContentHash(expense); err != nil {
		return "", err
	}
	return expense.ID.String(), nil
}

func expenseContentHash(e *models.Expense) string {
	parts := []string{
		e.Vendor,
		e.Description,
		e.Category,
		e.Amount.String(),
		e.VATAmount.String(),
		e.IncurredOn.Format("2006-01-02"),
	}
	return fmt.Sprintf("%016x", xxh3.HashString(strings.Join(parts, "\x1f")))
}

func orderStatusFrom(s string) models.OrderStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirmed", "booked", "accepted":
		return models.OrderStatusConfirmed
	case "completed", "complete", "delivered":
		return models.OrderStatusCompleted
	case "cancelled", "canceled", "declined":
		return models.OrderStatusCancelled
	default:
		return models.OrderStatusQuote
	}
}
