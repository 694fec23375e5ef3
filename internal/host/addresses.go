package host

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"vatchecker/internal/vat/models"
	id "vatchecker/pkg/domain"
	"vatchecker/pkg/platform/sentinel"
)

// PostgresAddresses reads host addresses from the addresses table.
// Deleted addresses are reported as not found.
type PostgresAddresses struct {
	db *sql.DB
}

func NewPostgresAddresses(db *sql.DB) *PostgresAddresses {
	return &PostgresAddresses{db: db}
}

func (a *PostgresAddresses) Address(ctx context.Context, addressID id.AddressID) (*models.Address, error) {
	query := `
		SELECT id, country_id, vat_number, company
		FROM addresses
		WHERE id = $1 AND NOT deleted
	`
	var addrID, countryID int64
	addr := &models.Address{}
	err := a.db.QueryRowContext(ctx, query, int64(addressID)).Scan(&addrID, &countryID, &addr.VATNumber, &addr.Company)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	addr.ID = id.AddressID(addrID)
	addr.CountryID = id.CountryID(countryID)
	return addr, nil
}

// InMemoryAddresses is a map-backed address provider for tests and local runs.
type InMemoryAddresses struct {
	mu        sync.RWMutex
	addresses map[id.AddressID]models.Address
}

func NewInMemoryAddresses() *InMemoryAddresses {
	return &InMemoryAddresses{addresses: make(map[id.AddressID]models.Address)}
}

// Put stores or replaces an address.
func (a *InMemoryAddresses) Put(addr models.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.addresses[addr.ID] = addr
}

func (a *InMemoryAddresses) Address(_ context.Context, addressID id.AddressID) (*models.Address, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	addr, ok := a.addresses[addressID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &addr, nil
}
