package importer

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
)

// fakeContactStore is an in-memory ContactStore for pipeline tests
type fakeContactStore struct {
	contacts []*models.Contact
	creates  int
}

func (s *fakeContactStore) FindByName(userID uuid.UUID, name string) (*models.Contact, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, c := range s.contacts {
		if c.UserID == userID && strings.ToLower(c.FullName()) == needle {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeContactStore) Create(c *models.Contact) error {
	s.creates++
	s.contacts = append(s.contacts, c)
	return nil
}

func TestResolverCreatesMissingContact(t *testing.T) {
	store := &fakeContactStore{}
	resolver := NewContactResolver(store)
	userID := uuid.New()

	ref, err := resolver.Resolve(userID, "Jane Doe")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !ref.Created {
		t.Error("Created = false, want true")
	}
	if len(store.contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(store.contacts))
	}
	if got := store.contacts[0].FirstName; got != "Jane" {
		t.Errorf("FirstName = %q, want %q", got, "Jane")
	}
	if got := store.contacts[0].LastName; got != "Doe" {
		t.Errorf("LastName = %q, want %q", got, "Doe")
	}
}

func TestResolverFindsExistingContact(t *testing.T) {
	userID := uuid.New()
	existing := models.NewContact(userID, "Jane", "Doe")
	store := &fakeContactStore{contacts: []*models.Contact{existing}}
	resolver := NewContactResolver(store)

	ref, err := resolver.Resolve(userID, "Jane Doe")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref.Created {
		t.Error("Created = true, want false")
	}
	if ref.ID != existing.ID {
		t.Errorf("ID = %v, want %v", ref.ID, existing.ID)
	}
	if store.creates != 0 {
		t.Errorf("creates = %d, want 0", store.creates)
	}
}

func TestResolverCachesRepeatedNames(t *testing.T) {
	store := &fakeContactStore{}
	resolver := NewContactResolver(store)
	userID := uuid.New()

	first, err := resolver.Resolve(userID, "Jane Doe")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := resolver.Resolve(userID, "Jane Doe")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
	if first.ID != second.ID {
		t.Errorf("resolved IDs differ: %v vs %v", first.ID, second.ID)
	}
}

func TestResolverScopesCacheByUser(t *testing.T) {
	store := &fakeContactStore{}
	resolver := NewContactResolver(store)

	refA, err := resolver.Resolve(uuid.New(), "Jane Doe")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	refB, err := resolver.Resolve(uuid.New(), "Jane Doe")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if refA.ID == refB.ID {
		t.Error("same contact resolved for two different users")
	}
	if store.creates != 2 {
		t.Errorf("creates = %d, want 2", store.creates)
	}
}
