package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

// OrderRepository provides order data access
type OrderRepository struct {
	db *DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order
func (r *OrderRepository) Create(o *models.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id, order_number, contact_id, event_date, event_type,
			description, price, deposit_paid, status, notes, expiry_date,
			source, imported_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		o.ID.String(),
		o.UserID.String(),
		o.OrderNumber,
		o.ContactID.String(),
		nullTime(o.EventDate),
		o.EventType,
		o.Description,
		o.Price.String(),
		o.DepositPaid,
		string(o.Status),
		o.Notes,
		nullTime(o.ExpiryDate),
		o.Source,
		nullTime(o.ImportedAt),
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpsertByOrderNumber inserts an order, or updates the existing row carrying
// the same (user_id, order_number). Re-importing a file is therefore an
// update, not a duplicate. On the update path the stored row keeps its
// original id, which is read back into o so callers always hold the
// persisted identity.
func (r *OrderRepository) UpsertByOrderNumber(o *models.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id, order_number, contact_id, event_date, event_type,
			description, price, deposit_paid, status, notes, expiry_date,
			source, imported_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, order_number) DO UPDATE SET
			contact_id = excluded.contact_id,
			event_date = excluded.event_date,
			event_type = excluded.event_type,
			description = excluded.description,
			price = excluded.price,
			deposit_paid = excluded.deposit_paid,
			status = excluded.status,
			notes = excluded.notes,
			expiry_date = excluded.expiry_date,
			source = excluded.source,
			imported_at = excluded.imported_at,
			updated_at = excluded.updated_at
	`
	_, err := r.db.Exec(query,
		o.ID.String(),
		o.UserID.String(),
		o.OrderNumber,
		o.ContactID.String(),
		nullTime(o.EventDate),
		o.EventType,
		o.Description,
		o.Price.String(),
		o.DepositPaid,
		string(o.Status),
		o.Notes,
		nullTime(o.ExpiryDate),
		o.Source,
		nullTime(o.ImportedAt),
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert order %s: %w", o.OrderNumber, err)
	}

	var id string
	err = r.db.QueryRow(
		"SELECT id FROM orders WHERE user_id = ? AND order_number = ?",
		o.UserID.String(), o.OrderNumber,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to read back order %s: %w", o.OrderNumber, err)
	}
	o.ID, _ = uuid.Parse(id)
	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	query := selectOrders + ` WHERE id = ?`
	return r.scanOrder(r.db.QueryRow(query, id.String()))
}

// GetByOrderNumber retrieves an order by its user-scoped natural key
func (r *OrderRepository) GetByOrderNumber(userID uuid.UUID, orderNumber string) (*models.Order, error) {
	query := selectOrders + ` WHERE user_id = ? AND order_number = ?`
	return r.scanOrder(r.db.QueryRow(query, userID.String(), orderNumber))
}

// GetByUserID retrieves all orders for a user, most recent event first
func (r *OrderRepository) GetByUserID(userID uuid.UUID) ([]*models.Order, error) {
	query := selectOrders + ` WHERE user_id = ? ORDER BY event_date DESC`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// GetByContactID retrieves all orders for a contact
func (r *OrderRepository) GetByContactID(contactID uuid.UUID) ([]*models.Order, error) {
	query := selectOrders + ` WHERE contact_id = ? ORDER BY event_date DESC`
	rows, err := r.db.Query(query, contactID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// CountByUserID returns the number of orders a user has
func (r *OrderRepository) CountByUserID(userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM orders WHERE user_id = ?", userID.String()).Scan(&count)
	return count, err
}

// Update modifies an existing order
func (r *OrderRepository) Update(o *models.Order) error {
	o.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE orders SET
			contact_id = ?, event_date = ?, event_type = ?, description = ?,
			price = ?, deposit_paid = ?, status = ?, notes = ?, expiry_date = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		o.ContactID.String(),
		nullTime(o.EventDate),
		o.EventType,
		o.Description,
		o.Price.String(),
		o.DepositPaid,
		string(o.Status),
		o.Notes,
		nullTime(o.ExpiryDate),
		o.UpdatedAt,
		o.ID.String(),
	)
	return err
}

// Delete removes an order
func (r *OrderRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM orders WHERE id = ?", id.String())
	return err
}

const selectOrders = `
	SELECT id, user_id, order_number, contact_id, event_date, event_type,
		description, price, deposit_paid, status, notes, expiry_date,
		source, imported_at, created_at, updated_at
	FROM orders`

func (r *OrderRepository) scanOrder(row *sql.Row) (*models.Order, error) {
	var o models.Order
	var id, userID, contactID, price, status string
	var eventType, description, notes, source sql.NullString
	var eventDate, expiryDate, importedAt sql.NullTime

	err := row.Scan(
		&id, &userID, &o.OrderNumber, &contactID, &eventDate, &eventType,
		&description, &price, &o.DepositPaid, &status, &notes, &expiryDate,
		&source, &importedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	fillOrder(&o, id, userID, contactID, price, status, eventType, description, notes, source, eventDate, expiryDate, importedAt)
	return &o, nil
}

func (r *OrderRepository) scanOrderRow(rows *sql.Rows) (*models.Order, error) {
	var o models.Order
	var id, userID, contactID, price, status string
	var eventType, description, notes, source sql.NullString
	var eventDate, expiryDate, importedAt sql.NullTime

	err := rows.Scan(
		&id, &userID, &o.OrderNumber, &contactID, &eventDate, &eventType,
		&description, &price, &o.DepositPaid, &status, &notes, &expiryDate,
		&source, &importedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	fillOrder(&o, id, userID, contactID, price, status, eventType, description, notes, source, eventDate, expiryDate, importedAt)
	return &o, nil
}

func fillOrder(o *models.Order, id, userID, contactID, price, status string,
	eventType, description, notes, source sql.NullString,
	eventDate, expiryDate, importedAt sql.NullTime) {

	o.ID, _ = uuid.Parse(id)
	o.UserID, _ = uuid.Parse(userID)
	o.ContactID, _ = uuid.Parse(contactID)
	o.Price, _ = decimal.NewFromString(price)
	o.Status = models.OrderStatus(status)
	o.EventType = eventType.String
	o.Description = description.String
	o.Notes = notes.String
	o.Source = source.String
	if eventDate.Valid {
		o.EventDate = eventDate.Time
	}
	if expiryDate.Valid {
		o.ExpiryDate = expiryDate.Time
	}
	if importedAt.Valid {
		o.ImportedAt = importedAt.Time
	}
}

// nullTime maps a zero time to NULL so empty dates don't persist as 0001-01-01
func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
