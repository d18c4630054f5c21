package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
)

// ContactRepository provides contact data access
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new contact
func (r *ContactRepository) Create(c *models.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, first_name, last_name, email, phone, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		c.ID.String(),
		c.UserID.String(),
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// GetByID retrieves a contact by ID
func (r *ContactRepository) GetByID(id uuid.UUID) (*models.Contact, error) {
	query := `
		SELECT id, user_id, first_name, last_name, email, phone, notes, created_at, updated_at
		FROM contacts WHERE id = ?
	`
	return r.scanContact(r.db.QueryRow(query, id.String()))
}

// GetByUserID retrieves all contacts for a user
func (r *ContactRepository) GetByUserID(userID uuid.UUID) ([]*models.Contact, error) {
	query := `
		SELECT id, user_id, first_name, last_name, email, phone, notes, created_at, updated_at
		FROM contacts WHERE user_id = ? ORDER BY first_name, last_name
	`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		c, err := r.scanContactRow(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// FindByName returns the first contact whose full name contains the input,
// or whose first name contains the input's first token, case-insensitively.
// Returns nil when no contact matches.
func (r *ContactRepository) FindByName(userID uuid.UUID, name string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	firstToken, _ := models.SplitName(name)

	query := `
		SELECT id, user_id, first_name, last_name, email, phone, notes, created_at, updated_at
		FROM contacts
		WHERE user_id = ?
		  AND (LOWER(first_name || ' ' || COALESCE(last_name, '')) LIKE '%' || LOWER(?) || '%'
		    OR LOWER(first_name) LIKE '%' || LOWER(?) || '%')
		ORDER BY created_at
		LIMIT 1
	`
	c, err := r.scanContact(r.db.QueryRow(query, userID.String(), name, firstToken))
	if err != nil {
		return nil, fmt.Errorf("failed to find contact by name: %w", err)
	}
	return c, nil
}

// Update modifies an existing contact
func (r *ContactRepository) Update(c *models.Contact) error {
	c.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE contacts SET first_name = ?, last_name = ?, email = ?, phone = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.Notes,
		c.UpdatedAt,
		c.ID.String(),
	)
	return err
}

// Delete removes a contact and all its orders
func (r *ContactRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM contacts WHERE id = ?", id.String())
	return err
}

func (r *ContactRepository) scanContact(row *sql.Row) (*models.Contact, error) {
	var c models.Contact
	var id, userID string
	var lastName, email, phone, notes sql.NullString

	err := row.Scan(&id, &userID, &c.FirstName, &lastName, &email, &phone, &notes, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.ID, _ = uuid.Parse(id)
	c.UserID, _ = uuid.Parse(userID)
	c.LastName = lastName.String
	c.Email = email.String
	c.Phone = phone.String
	c.Notes = notes.String

	return &c, nil
}

func (r *ContactRepository) scanContactRow(rows *sql.Rows) (*models.Contact, error) {
	var c models.Contact
	var id, userID string
	var lastName, email, phone, notes sql.NullString

	err := rows.Scan(&id, &userID, &c.FirstName, &lastName, &email, &phone, &notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.ID, _ = uuid.Parse(id)
	c.UserID, _ = uuid.Parse(userID)
	c.LastName = lastName.String
	c.Email = email.String
	c.Phone = phone.String
	c.Notes = notes.String

	return &c, nil
}
