package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact represents a customer or enquirer
type Contact struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewContact creates a new contact with generated ID and timestamps
func NewContact(userID uuid.UUID, firstName, lastName string) *Contact {
	now := time.Now().UTC()
	return &Contact{
		ID:        uuid.New(),
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName returns the contact's display name
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SplitName divides a free-text name into first name and remainder.
// "Jane Doe Smith" becomes ("Jane", "Doe Smith"); a single token has
// an empty last name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
