package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

// InvoiceRepository provides invoice data access
type InvoiceRepository struct {
	db *DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a new invoice
func (r *InvoiceRepository) Create(inv *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, order_id, invoice_number, amount, issued_date, due_date, paid, paid_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		inv.ID.String(),
		inv.UserID.String(),
		inv.OrderID.String(),
		inv.InvoiceNumber,
		inv.Amount.String(),
		nullTime(inv.IssuedDate),
		nullTime(inv.DueDate),
		inv.Paid,
		nullTime(inv.PaidDate),
		inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// NextSequence returns the next invoice sequence number for a user
func (r *InvoiceRepository) NextSequence(userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM invoices WHERE user_id = ?", userID.String()).Scan(&count)
	return count + 1, err
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	query := selectInvoices + ` WHERE id = ?`
	row := r.db.QueryRow(query, id.String())
	inv, err := scanInvoice(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return inv, err
}

// GetByUserID retrieves all invoices for a user, newest first
func (r *InvoiceRepository) GetByUserID(userID uuid.UUID) ([]*models.Invoice, error) {
	query := selectInvoices + ` WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

// GetByOrderID retrieves all invoices raised against an order
func (r *InvoiceRepository) GetByOrderID(orderID uuid.UUID) ([]*models.Invoice, error) {
	query := selectInvoices + ` WHERE order_id = ? ORDER BY created_at DESC`
	rows, err := r.db.Query(query, orderID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

// Update modifies an existing invoice
func (r *InvoiceRepository) Update(inv *models.Invoice) error {
	query := `
		UPDATE invoices SET amount = ?, issued_date = ?, due_date = ?, paid = ?, paid_date = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		inv.Amount.String(),
		nullTime(inv.IssuedDate),
		nullTime(inv.DueDate),
		inv.Paid,
		nullTime(inv.PaidDate),
		inv.ID.String(),
	)
	return err
}

// Delete removes an invoice
func (r *InvoiceRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM invoices WHERE id = ?", id.String())
	return err
}

const selectInvoices = `
	SELECT id, user_id, order_id, invoice_number, amount, issued_date, due_date, paid, paid_date, created_at
	FROM invoices`

func scanInvoice(scan func(...interface{}) error) (*models.Invoice, error) {
	var inv models.Invoice
	var id, userID, orderID, amount string
	var issuedDate, dueDate, paidDate sql.NullTime

	err := scan(&id, &userID, &orderID, &inv.InvoiceNumber, &amount, &issuedDate, &dueDate, &inv.Paid, &paidDate, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}

	inv.ID, _ = uuid.Parse(id)
	inv.UserID, _ = uuid.Parse(userID)
	inv.OrderID, _ = uuid.Parse(orderID)
	inv.Amount, _ = decimal.NewFromString(amount)
	if issuedDate.Valid {
		inv.IssuedDate = issuedDate.Time
	}
	if dueDate.Valid {
		inv.DueDate = dueDate.Time
	}
	if paidDate.Valid {
		inv.PaidDate = paidDate.Time
	}

	return &inv, nil
}
