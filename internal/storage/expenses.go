package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

// ExpenseRepository provides expense data access
type ExpenseRepository struct {
	db *DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(e *models.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, vendor, description, category, amount, vat_amount, incurred_on, paid, content_hash, source, imported_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		e.ID.String(),
		e.UserID.String(),
		e.Vendor,
		e.Description,
		e.Category,
		e.Amount.String(),
		e.VATAmount.String(),
		nullTime(e.IncurredOn),
		e.Paid,
		nullString(e.ContentHash),
		e.Source,
		nullTime(e.ImportedAt),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// UpsertByContentHash inserts an expense, or updates the existing row whose
// (user_id, content_hash) matches. Expense exports carry no natural key, so
// a hash of the canonical row content stands in for one and re-imports dedup
// against it. On the update path the stored row keeps its original id,
// which is read back into e so callers always hold the persisted identity.
func (r *ExpenseRepository) UpsertByContentHash(e *models.Expense) error {
	if e.ContentHash == "" {
		return r.Create(e)
	}
	query := `
		INSERT INTO expenses (id, user_id, vendor, description, category, amount, vat_amount, incurred_on, paid, content_hash, source, imported_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, content_hash) DO UPDATE SET
			vendor = excluded.vendor,
			description = excluded.description,
			category = excluded.category,
			amount = excluded.amount,
			vat_amount = excluded.vat_amount,
			incurred_on = excluded.incurred_on,
			paid = excluded.paid,
			source = excluded.source,
			imported_at = excluded.imported_at
	`
	_, err := r.db.Exec(query,
		e.ID.String(),
		e.UserID.String(),
		e.Vendor,
		e.Description,
		e.Category,
		e.Amount.String(),
		e.VATAmount.String(),
		nullTime(e.IncurredOn),
		e.Paid,
		e.ContentHash,
		e.Source,
		nullTime(e.ImportedAt),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert expense: %w", err)
	}

	var id string
	err = r.db.QueryRow(
		"SELECT id FROM expenses WHERE user_id = ? AND content_hash = ?",
		e.UserID.String(), e.ContentHash,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to read back expense: %w", err)
	}
	e.ID, _ = uuid.Parse(id)
	return nil
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	query := selectExpenses + ` WHERE id = ?`
	row := r.db.QueryRow(query, id.String())
	e, err := scanExpense(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// GetByUserID retrieves all expenses for a user, most recent first
func (r *ExpenseRepository) GetByUserID(userID uuid.UUID) ([]*models.Expense, error) {
	query := selectExpenses + ` WHERE user_id = ? ORDER BY incurred_on DESC`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// CountByUserID returns the number of expenses a user has
func (r *ExpenseRepository) CountByUserID(userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM expenses WHERE user_id = ?", userID.String()).Scan(&count)
	return count, err
}

// Update modifies an existing expense
func (r *ExpenseRepository) Update(e *models.Expense) error {
	query := `
		UPDATE expenses SET vendor = ?, description = ?, category = ?, amount = ?, vat_amount = ?, incurred_on = ?, paid = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		e.Vendor,
		e.Description,
		e.Category,
		e.Amount.String(),
		e.VATAmount.String(),
		nullTime(e.IncurredOn),
		e.Paid,
		e.ID.String(),
	)
	return err
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM expenses WHERE id = ?", id.String())
	return err
}

const selectExpenses = `
	SELECT id, user_id, vendor, description, category, amount, vat_amount, incurred_on, paid, content_hash, source, imported_at, created_at
	FROM expenses`

func scanExpense(scan func(...interface{}) error) (*models.Expense, error) {
	var e models.Expense
	var id, userID, amount, vatAmount string
	var description, category, contentHash, source sql.NullString
	var incurredOn, importedAt sql.NullTime

	err := scan(&id, &userID, &e.Vendor, &description, &category, &amount, &vatAmount, &incurredOn, &e.Paid, &contentHash, &source, &importedAt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	e.ID, _ = uuid.Parse(id)
	e.UserID, _ = uuid.Parse(userID)
	e.Amount, _ = decimal.NewFromString(amount)
	e.VATAmount, _ = decimal.NewFromString(vatAmount)
	e.Description = description.String
	e.Category = category.String
	e.ContentHash = contentHash.String
	e.Source = source.String
	if incurredOn.Valid {
		e.IncurredOn = incurredOn.Time
	}
	if importedAt.Valid {
		e.ImportedAt = importedAt.Time
	}

	return &e, nil
}

// nullString maps an empty string to NULL so the (user_id, content_hash)
// unique index ignores manually-entered rows.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
