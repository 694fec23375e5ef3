package host

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vatchecker/internal/vat/country"
	id "vatchecker/pkg/domain"
	"vatchecker/pkg/platform/sentinel"
)

// PostgresCountries reads the host country table.
type PostgresCountries struct {
	db *sql.DB
}

func NewPostgresCountries(db *sql.DB) *PostgresCountries {
	return &PostgresCountries{db: db}
}

func (c *PostgresCountries) ISOByID(ctx context.Context, countryID id.CountryID) (country.Code, error) {
	var code string
	err := c.db.QueryRowContext(ctx, `SELECT iso_code FROM countries WHERE id = $1`, int64(countryID)).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find country by id: %w", err)
	}
	return country.Code(strings.ToUpper(strings.TrimSpace(code))), nil
}

func (c *PostgresCountries) IDByISO(ctx context.Context, code country.Code) (id.CountryID, error) {
	var countryID int64
	err := c.db.QueryRowContext(ctx, `SELECT id FROM countries WHERE iso_code = $1`, string(code)).Scan(&countryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, sentinel.ErrNotFound
		}
		return 0, fmt.Errorf("find country by iso code: %w", err)
	}
	return id.CountryID(countryID), nil
}

// InMemoryCountries is an immutable two-way country table.
type InMemoryCountries struct {
	byID   map[id.CountryID]country.Code
	byCode map[country.Code]id.CountryID
}

// NewInMemoryCountries builds the table from an id -> code map.
func NewInMemoryCountries(table map[id.CountryID]country.Code) *InMemoryCountries {
	c := &InMemoryCountries{
		byID:   make(map[id.CountryID]country.Code, len(table)),
		byCode: make(map[country.Code]id.CountryID, len(table)),
	}
	for countryID, code := range table {
		c.byID[countryID] = code
		c.byCode[code] = countryID
	}
	return c
}

// SeedCountries numbers codes from 1 in the given order. Local runs seed
// it from country.All so every registry code has a host id.
func SeedCountries(codes []country.Code) *InMemoryCountries {
	table := make(map[id.CountryID]country.Code, len(codes))
	for i, code := range codes {
		table[id.CountryID(i+1)] = code
	}
	return NewInMemoryCountries(table)
}

func (c *InMemoryCountries) ISOByID(_ context.Context, countryID id.CountryID) (country.Code, error) {
	code, ok := c.byID[countryID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return code, nil
}

func (c *InMemoryCountries) IDByISO(_ context.Context, code country.Code) (id.CountryID, error) {
	countryID, ok := c.byCode[code]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return countryID, nil
}
