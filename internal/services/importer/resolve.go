package importer

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
	"golang.org/x/sync/singleflight"
)

// ContactStore is the slice of contact persistence the resolver needs
type ContactStore interface {
	FindByName(userID uuid.UUID, name string) (*models.Contact, error)
	Create(c *models.Contact) error
}

// ResolvedContact is a stable contact reference plus whether the
// resolver had to create it
type ResolvedContact struct {
	ID      uuid.UUID
	Created bool
}

// ContactResolver turns free-text contact names into contact records,
// creating minimal ones when nothing matches. A per-batch cache keyed by
// the exact input string avoids re-querying and re-creating for repeated
// names; singleflight serializes concurrent misses so two rows naming the
// same new contact produce exactly one creation.
type ContactResolver struct {
	store ContactStore

	mu    sync.Mutex
	cache map[string]ResolvedContact
	group singleflight.Group
}

// NewContactResolver creates a resolver scoped to one import batch
func NewContactResolver(store ContactStore) *ContactResolver {
	return &ContactResolver{
		store: store,
		cache: make(map[string]ResolvedContact),
	}
}

// Resolve returns a reference to a contact matching the input name,
// creating a minimal contact when no existing one matches.
func (r *ContactResolver) Resolve(userID uuid.UUID, name string) (ResolvedContact, error) {
	key := userID.String() + "\x00" + name

	r.mu.Lock()
	if ref, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return ref, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		r.mu.Lock()
		if ref, ok := r.cache[key]; ok {
			r.mu.Unlock()
			return ref, nil
		}
		r.mu.Unlock()

		ref, err := r.lookupOrCreate(userID, name)
		if err != nil {
			return ResolvedContact{}, err
		}

		r.mu.Lock()
		r.cache[key] = ref
		r.mu.Unlock()
		return ref, nil
	})
	if err != nil {
		return ResolvedContact{}, err
	}
	return v.(ResolvedContact), nil
}

func (r *ContactResolver) lookupOrCreate(userID uuid.UUID, name string) (ResolvedContact, error) {
	existing, err := r.store.FindByName(userID, name)
	if err != nil {
		return ResolvedContact{}, fmt.Errorf("contact lookup for %q: %w", name, err)
	}
	if existing != nil {
		return ResolvedContact{ID: existing.ID}, nil
	}

	first, last := models.SplitName(name)
	contact := models.NewContact(userID, first, last)
	if err := r.store.Create(contact); err != nil {
		return ResolvedContact{}, fmt.Errorf("contact creation for %q: %w", name, err)
	}
	return ResolvedContact{ID: contact.ID, Created: true}, nil
}
