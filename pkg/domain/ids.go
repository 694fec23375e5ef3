// Package domain holds typed identifiers shared across packages.
//
// The host platform identifies addresses and countries by numeric ids while
// the VAT registry works with ISO codes. Keeping the ids as distinct types
// stops one identifier space from leaking into the other.
package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "vatchecker/pkg/domain-errors"
)

// AddressID identifies a host platform address. The zero value means "no address".
type AddressID int64

// CountryID identifies a host platform country.
type CountryID int64

// RecordID identifies a persisted validation record.
type RecordID uuid.UUID

func (id AddressID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id AddressID) IsNil() bool    { return id == 0 }

func (id CountryID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id CountryID) IsNil() bool    { return id == 0 }

func (id RecordID) String() string { return uuid.UUID(id).String() }
func (id RecordID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewRecordID returns a fresh random record id.
func NewRecordID() RecordID { return RecordID(uuid.New()) }

// ParseAddressID parses a positive decimal address id from external input.
func ParseAddressID(s string) (AddressID, error) {
	n, err := parsePositive(s, "address id")
	if err != nil {
		return 0, err
	}
	return AddressID(n), nil
}

// ParseCountryID parses a positive decimal country id from external input.
func ParseCountryID(s string) (CountryID, error) {
	n, err := parsePositive(s, "country id")
	if err != nil {
		return 0, err
	}
	return CountryID(n), nil
}

// ParseRecordID parses a non-nil UUID record id.
func ParseRecordID(s string) (RecordID, error) {
	if s == "" {
		return RecordID{}, dErrors.New(dErrors.CodeInvalidInput, "record id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return RecordID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid record id format")
	}
	if u == uuid.Nil {
		return RecordID{}, dErrors.New(dErrors.CodeInvalidInput, "record id cannot be nil")
	}
	return RecordID(u), nil
}

func parsePositive(s, field string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field+" format")
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, field+" must be positive")
	}
	return n, nil
}
