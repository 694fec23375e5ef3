package models

import (
	"time"

	"vatchecker/internal/vat/country"
	id "vatchecker/pkg/domain"
)

// Status is the result of a validation call.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	// StatusIndeterminate means the registry could not be reached. It never
	// leaves the engine: the offline policy collapses it to valid or invalid.
	StatusIndeterminate Status = "indeterminate"
	// StatusDisabled means validation is switched off. Callers treat it as
	// "skip validation", never as invalid.
	StatusDisabled Status = "disabled"
)

// Source records how an outcome was produced.
type Source string

const (
	SourceFormat        Source = "format"
	SourceCache         Source = "cache"
	SourceStore         Source = "store"
	SourceRegistry      Source = "registry"
	SourceOfflinePolicy Source = "offline_policy"
	SourceDisabled      Source = "disabled"
)

// MessageNotValid is the only registry-derived message shown to users.
const MessageNotValid = "This is not a valid VAT number"

// Outcome is what the engine returns to callers.
type Outcome struct {
	Status Status `json:"status"`
	// Reason is the user-facing field error; empty unless the number failed
	// the format check or the registry rejected it.
	Reason    string    `json:"reason"`
	Source    Source    `json:"source"`
	CheckedAt time.Time `json:"checked_at"`
}

// Valid maps the outcome onto the tri-state boolean of the JSON boundary:
// nil for disabled, otherwise whether the number is valid.
func (o Outcome) Valid() *bool {
	if o.Status == StatusDisabled {
		return nil
	}
	v := o.Status == StatusValid
	return &v
}

// IsValid reports whether the outcome is a definite valid.
func (o Outcome) IsValid() bool {
	return o.Status == StatusValid
}

// ValidOutcome builds a valid outcome.
func ValidOutcome(source Source, at time.Time) Outcome {
	return Outcome{Status: StatusValid, Source: source, CheckedAt: at}
}

// InvalidOutcome builds an invalid outcome with a user-facing reason.
func InvalidOutcome(reason string, source Source, at time.Time) Outcome {
	return Outcome{Status: StatusInvalid, Reason: reason, Source: source, CheckedAt: at}
}

// BoolOutcome builds a valid or invalid outcome without a reason.
func BoolOutcome(valid bool, source Source, at time.Time) Outcome {
	if valid {
		return ValidOutcome(source, at)
	}
	return Outcome{Status: StatusInvalid, Source: source, CheckedAt: at}
}

// DisabledOutcome is returned when live mode is off.
func DisabledOutcome(at time.Time) Outcome {
	return Outcome{Status: StatusDisabled, Source: SourceDisabled, CheckedAt: at}
}

// CacheKey identifies a transient cache entry.
type CacheKey struct {
	Country country.Code
	Number  string
}

func (k CacheKey) String() string {
	return string(k.Country) + ":" + k.Number
}

// ValidationRecord is the persisted result of checking one VAT number for
// one address. (AddressID, CountryID, VATNumber) is unique.
type ValidationRecord struct {
	ID            id.RecordID
	AddressID     id.AddressID
	CountryID     id.CountryID
	VATNumber     string
	Company       string
	Valid         bool
	Source        Source
	CreatedAt     time.Time
	LastCheckedAt time.Time
	LastValidAt   *time.Time
}

// IsFreshAt reports whether the record can be reused without a registry
// call. Only registry-sourced records count; offline guesses never suppress
// a real check.
func (r *ValidationRecord) IsFreshAt(now time.Time, window time.Duration) bool {
	if r == nil || r.Source != SourceRegistry {
		return false
	}
	return now.Sub(r.LastCheckedAt) < window
}

// Address is the host platform address as seen by the engine.
type Address struct {
	ID        id.AddressID
	CountryID id.CountryID
	VATNumber string
	Company   string
}

// HasVATNumber reports whether the address carries a VAT number at all.
func (a *Address) HasVATNumber() bool {
	return a != nil && a.VATNumber != ""
}
