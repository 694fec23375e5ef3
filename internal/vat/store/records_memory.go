package store

import (
	"context"
	"fmt"
	"sync"

	"vatchecker/internal/vat/models"
	id "vatchecker/pkg/domain"
)

type recordKey struct {
	addressID id.AddressID
	countryID id.CountryID
	number    string
}

// InMemoryRecordStore is the persistent tier for single-process deployments
// and tests. It enforces the same uniqueness and upsert rules as Postgres.
type InMemoryRecordStore struct {
	mu      sync.RWMutex
	records map[recordKey]models.ValidationRecord
}

// NewInMemoryRecordStore creates an empty record store.
func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{records: make(map[recordKey]models.ValidationRecord)}
}

// Find returns the record for the triple regardless of its age.
func (s *InMemoryRecordStore) Find(_ context.Context, addressID id.AddressID, countryID id.CountryID, number string) (*models.ValidationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey{addressID, countryID, number}]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Upsert inserts record or overwrites the existing one for the same triple.
// The existing ID and CreatedAt are kept, and LastValidAt only moves forward
// when the new record is valid.
func (s *InMemoryRecordStore) Upsert(_ context.Context, record *models.ValidationRecord) (*models.ValidationRecord, error) {
	if record == nil {
		return nil, fmt.Errorf("validation record is required")
	}
	key := recordKey{record.AddressID, record.CountryID, record.VATNumber}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := *record
	if existing, ok := s.records[key]; ok {
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		if next.LastValidAt == nil {
			next.LastValidAt = existing.LastValidAt
		}
	} else {
		if next.ID.IsNil() {
			next.ID = id.NewRecordID()
		}
		if next.CreatedAt.IsZero() {
			next.CreatedAt = next.LastCheckedAt
		}
	}
	s.records[key] = next

	out := next
	return &out, nil
}

// Len returns the number of stored records.
func (s *InMemoryRecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
