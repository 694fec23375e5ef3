// Package ports declares the collaborators the VAT engine consumes. Host
// platform adapters, stores and publishers implement these.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks

import (
	"context"

	"vatchecker/internal/audit"
	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/models"
	"vatchecker/internal/vat/policy"
	id "vatchecker/pkg/domain"
)

// ConfigProvider exposes the operator settings the engine depends on.
type ConfigProvider interface {
	IsEnabledCountry(code country.Code) bool
	OriginCountryID() id.CountryID
	OfflinePolicy() policy.Policy
	LiveModeEnabled() bool
	NoTaxGroupID() int64
}

// AddressProvider resolves host addresses.
// Returns sentinel.ErrNotFound when the address does not exist.
type AddressProvider interface {
	Address(ctx context.Context, addressID id.AddressID) (*models.Address, error)
}

// CountryLookup converts between host country ids and ISO codes.
// Returns sentinel.ErrNotFound for unknown ids or codes.
type CountryLookup interface {
	ISOByID(ctx context.Context, countryID id.CountryID) (country.Code, error)
	IDByISO(ctx context.Context, code country.Code) (id.CountryID, error)
}

// TransientCache is the short-lived outcome cache keyed by (country, number).
// Get returns sentinel.ErrNotFound on a miss.
type TransientCache interface {
	Get(ctx context.Context, key models.CacheKey) (*models.Outcome, error)
	Put(ctx context.Context, key models.CacheKey, outcome models.Outcome) error
}

// RecordStore is the persistent tier keyed by (address, country, number).
// Find returns sentinel.ErrNotFound on a miss.
type RecordStore interface {
	Find(ctx context.Context, addressID id.AddressID, countryID id.CountryID, number string) (*models.ValidationRecord, error)
	Upsert(ctx context.Context, record *models.ValidationRecord) (*models.ValidationRecord, error)
}

// AuditPublisher records validation decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
