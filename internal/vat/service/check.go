package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"vatchecker/internal/audit"
	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/format"
	"vatchecker/internal/vat/models"
	"vatchecker/internal/vat/policy"
	"vatchecker/internal/vat/providers"
	id "vatchecker/pkg/domain"
	dErrors "vatchecker/pkg/domain-errors"
	"vatchecker/pkg/platform/sentinel"
	"vatchecker/pkg/requestcontext"
)

const (
	tierTransient = "transient"
	tierStore     = "store"

	resultHit  = "hit"
	resultMiss = "miss"
)

// CheckVAT validates a VAT number for a country.
//
// The returned outcome is never indeterminate: registry failures are
// resolved by the configured offline policy. A non-nil error means the
// request could not be evaluated at all (unknown country id, missing
// collaborator).
func (s *Service) CheckVAT(ctx context.Context, req CheckRequest) (*models.Outcome, error) {
	return s.check(ctx, req, 0)
}

// CheckAddress validates the VAT number stored on a host address.
func (s *Service) CheckAddress(ctx context.Context, addressID id.AddressID) (*models.Outcome, error) {
	addr, code, err := s.resolveAddress(ctx, addressID)
	if err != nil {
		return nil, err
	}
	return s.check(ctx, CheckRequest{
		AddressID: addr.ID,
		Company:   addr.Company,
		RawVAT:    addr.VATNumber,
		Country:   code,
	}, addr.CountryID)
}

// check runs the validation state machine. knownCountryID is the host id of
// req.Country when the caller already resolved it; zero means look it up.
func (s *Service) check(ctx context.Context, req CheckRequest, knownCountryID id.CountryID) (*models.Outcome, error) {
	now := requestcontext.Now(ctx)

	if !s.config.LiveModeEnabled() {
		return s.finish(models.DisabledOutcome(now)), nil
	}

	if !s.config.IsEnabledCountry(req.Country) {
		return s.finish(models.InvalidOutcome(format.MessageNotEUCountry, models.SourceFormat, now)), nil
	}
	normalized, err := s.validator.Normalize(req.Country, req.RawVAT)
	if err != nil {
		var fe *format.Error
		if errors.As(err, &fe) {
			return s.finish(models.InvalidOutcome(fe.Message, models.SourceFormat, now)), nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to normalize VAT number")
	}

	key := models.CacheKey{Country: normalized.Country, Number: normalized.Number}
	if cached := s.cached(ctx, key); cached != nil {
		return s.finish(*cached), nil
	}

	var previous *models.ValidationRecord
	countryID := knownCountryID
	withAddress := !req.AddressID.IsNil()
	if withAddress {
		if countryID.IsNil() {
			countryID, err = s.countryID(ctx, normalized.Country)
			if err != nil {
				return nil, err
			}
		}
		previous = s.previous(ctx, req.AddressID, countryID, normalized.Number)
		if previous.IsFreshAt(now, s.window) {
			s.metrics.RecordCacheLookup(tierStore, resultHit)
			outcome := recordOutcome(previous)
			s.remember(ctx, key, outcome)
			return s.finish(outcome), nil
		}
		s.metrics.RecordCacheLookup(tierStore, resultMiss)
	}

	outcome, settled := s.verify(ctx, normalized, previous, now)
	if !settled {
		// The caller left before the registry answered. The outcome is theirs
		// alone and is neither remembered nor audited.
		return s.finish(outcome), nil
	}
	if withAddress {
		s.persist(ctx, req, countryID, normalized.Number, outcome)
	}
	s.remember(ctx, key, outcome)
	s.emit(ctx, audit.Event{
		Action:    audit.ActionVATValidated,
		AddressID: int64(req.AddressID),
		Country:   string(normalized.Country),
		VATNumber: normalized.Number,
		Status:    string(outcome.Status),
		Source:    string(outcome.Source),
		Reason:    outcome.Reason,
	})
	return s.finish(outcome), nil
}

// verify asks the registry, sharing one call between concurrent callers for
// the same number. The shared call is detached from any single caller so one
// disconnect cannot turn every waiter's answer into a policy guess; the
// verifier's own timeout bounds it. settled is false when ctx ended first.
func (s *Service) verify(ctx context.Context, n format.Normalized, previous *models.ValidationRecord, now time.Time) (outcome models.Outcome, settled bool) {
	shared := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(n.VIESCode+":"+n.Number, func() (any, error) {
		valid, err := s.verifier.Verify(shared, n.VIESCode, n.Number)
		return valid, err
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return s.abandoned(ctx, n, previous, now), false
	}
	if ctx.Err() != nil {
		return s.abandoned(ctx, n, previous, now), false
	}

	if res.Err == nil {
		if res.Val.(bool) {
			return models.ValidOutcome(models.SourceRegistry, now), true
		}
		return models.InvalidOutcome(models.MessageNotValid, models.SourceRegistry, now), true
	}

	p := s.config.OfflinePolicy()
	valid := policy.Resolve(p, previous)
	s.logger.WarnContext(ctx, "VAT registry unavailable, applying offline policy",
		"country", n.Country,
		"vat_number", n.Number,
		"category", providers.GetCategory(res.Err),
		"policy", p,
		"valid", valid,
		"error", res.Err,
	)
	s.metrics.IncrementOfflineResolution(p.String(), valid)
	return models.BoolOutcome(valid, models.SourceOfflinePolicy, now), true
}

// abandoned answers a caller whose context ended before the registry did.
func (s *Service) abandoned(ctx context.Context, n format.Normalized, previous *models.ValidationRecord, now time.Time) models.Outcome {
	s.logger.InfoContext(ctx, "caller left before VAT registry answered",
		"country", n.Country,
		"vat_number", n.Number,
		"error", ctx.Err(),
	)
	return models.BoolOutcome(policy.Resolve(s.config.OfflinePolicy(), previous), models.SourceOfflinePolicy, now)
}

func (s *Service) cached(ctx context.Context, key models.CacheKey) *models.Outcome {
	outcome, err := s.cache.Get(ctx, key)
	if err == nil {
		s.metrics.RecordCacheLookup(tierTransient, resultHit)
		return outcome
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "transient cache lookup failed",
			"key", key.String(),
			"error", err,
		)
	}
	s.metrics.RecordCacheLookup(tierTransient, resultMiss)
	return nil
}

func (s *Service) remember(ctx context.Context, key models.CacheKey, outcome models.Outcome) {
	if err := s.cache.Put(ctx, key, outcome); err != nil {
		s.logger.WarnContext(ctx, "transient cache write failed",
			"key", key.String(),
			"error", err,
		)
	}
}

// previous returns the stored record regardless of age, or nil.
func (s *Service) previous(ctx context.Context, addressID id.AddressID, countryID id.CountryID, number string) *models.ValidationRecord {
	record, err := s.records.Find(ctx, addressID, countryID, number)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "validation record lookup failed",
				"address_id", addressID,
				"vat_number", number,
				"error", err,
			)
		}
		return nil
	}
	return record
}

func (s *Service) persist(ctx context.Context, req CheckRequest, countryID id.CountryID, number string, outcome models.Outcome) {
	record := &models.ValidationRecord{
		AddressID:     req.AddressID,
		CountryID:     countryID,
		VATNumber:     number,
		Company:       req.Company,
		Valid:         outcome.IsValid(),
		Source:        outcome.Source,
		LastCheckedAt: outcome.CheckedAt,
	}
	if record.Valid {
		t := outcome.CheckedAt
		record.LastValidAt = &t
	}
	if _, err := s.records.Upsert(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist validation record",
			"address_id", req.AddressID,
			"country_id", countryID,
			"vat_number", number,
			"error", err,
		)
		s.metrics.IncrementPersistFailure()
	}
}

func (s *Service) countryID(ctx context.Context, code country.Code) (id.CountryID, error) {
	if s.countries == nil {
		return 0, dErrors.New(dErrors.CodeInternal, "country lookup is not configured")
	}
	countryID, err := s.countries.IDByISO(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.Wrap(err, dErrors.CodeInvalidInput, "unknown country: "+string(code))
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve country")
	}
	return countryID, nil
}

func (s *Service) resolveAddress(ctx context.Context, addressID id.AddressID) (*models.Address, country.Code, error) {
	if s.addresses == nil || s.countries == nil {
		return nil, "", dErrors.New(dErrors.CodeInternal, "address lookup is not configured")
	}
	addr, err := s.addresses.Address(ctx, addressID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, "", dErrors.Wrap(err, dErrors.CodeNotFound, "address not found")
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load address")
	}
	code, err := s.countries.ISOByID(ctx, addr.CountryID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "unknown country id "+addr.CountryID.String())
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve country")
	}
	return addr, code, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	_ = s.auditor.Emit(ctx, event)
}

func (s *Service) finish(outcome models.Outcome) *models.Outcome {
	s.metrics.IncrementOutcome(string(outcome.Status), string(outcome.Source))
	return &outcome
}

// recordOutcome replays a stored registry answer.
func recordOutcome(record *models.ValidationRecord) models.Outcome {
	if record.Valid {
		return models.ValidOutcome(models.SourceStore, record.LastCheckedAt)
	}
	return models.InvalidOutcome(models.MessageNotValid, models.SourceStore, record.LastCheckedAt)
}
