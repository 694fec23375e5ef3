package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vatchecker/internal/vat/models"
	id "vatchecker/pkg/domain"
)

// PostgresRecordStore persists validation records in PostgreSQL.
// The unique constraint on (address_id, country_id, vat_number) makes
// concurrent upserts of the same triple last-write-wins.
type PostgresRecordStore struct {
	db *sql.DB
}

// NewPostgresRecordStore constructs a PostgreSQL-backed record store.
func NewPostgresRecordStore(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{db: db}
}

const findRecordSQL = `
	SELECT id, address_id, country_id, vat_number, company, valid, source,
	       created_at, last_checked_at, last_valid_at
	FROM vat_validations
	WHERE address_id = $1 AND country_id = $2 AND vat_number = $3`

const upsertRecordSQL = `
	INSERT INTO vat_validations (
		id, address_id, country_id, vat_number, company, valid, source,
		created_at, last_checked_at, last_valid_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (address_id, country_id, vat_number) DO UPDATE SET
		company = EXCLUDED.company,
		valid = EXCLUDED.valid,
		source = EXCLUDED.source,
		last_checked_at = EXCLUDED.last_checked_at,
		last_valid_at = COALESCE(EXCLUDED.last_valid_at, vat_validations.last_valid_at)
	RETURNING id, created_at, last_valid_at`

func (s *PostgresRecordStore) Find(ctx context.Context, addressID id.AddressID, countryID id.CountryID, number string) (*models.ValidationRecord, error) {
	var (
		rec         models.ValidationRecord
		recordID    string
		addr, ctry  int64
		source      string
		lastValidAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, findRecordSQL, int64(addressID), int64(countryID), number).Scan(
		&recordID, &addr, &ctry, &rec.VATNumber, &rec.Company, &rec.Valid, &source,
		&rec.CreatedAt, &rec.LastCheckedAt, &lastValidAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find validation record: %w", err)
	}

	parsed, err := uuid.Parse(recordID)
	if err != nil {
		return nil, fmt.Errorf("parse validation record id: %w", err)
	}
	rec.ID = id.RecordID(parsed)
	rec.AddressID = id.AddressID(addr)
	rec.CountryID = id.CountryID(ctry)
	rec.Source = models.Source(source)
	if lastValidAt.Valid {
		t := lastValidAt.Time
		rec.LastValidAt = &t
	}
	return &rec, nil
}

func (s *PostgresRecordStore) Upsert(ctx context.Context, record *models.ValidationRecord) (*models.ValidationRecord, error) {
	if record == nil {
		return nil, fmt.Errorf("validation record is required")
	}

	recordID := record.ID
	if recordID.IsNil() {
		recordID = id.NewRecordID()
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = record.LastCheckedAt
	}
	var lastValidAt sql.NullTime
	if record.LastValidAt != nil {
		lastValidAt = sql.NullTime{Time: *record.LastValidAt, Valid: true}
	}

	out := *record
	var (
		storedID    string
		storedValid sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, upsertRecordSQL,
		recordID.String(),
		int64(record.AddressID),
		int64(record.CountryID),
		record.VATNumber,
		record.Company,
		record.Valid,
		string(record.Source),
		createdAt,
		record.LastCheckedAt,
		lastValidAt,
	).Scan(&storedID, &out.CreatedAt, &storedValid)
	if err != nil {
		return nil, fmt.Errorf("upsert validation record: %w", err)
	}

	parsed, err := uuid.Parse(storedID)
	if err != nil {
		return nil, fmt.Errorf("parse validation record id: %w", err)
	}
	out.ID = id.RecordID(parsed)
	out.LastValidAt = nil
	if storedValid.Valid {
		t := storedValid.Time
		out.LastValidAt = &t
	}
	return &out, nil
}
