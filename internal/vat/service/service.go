// Package service implements the VAT validation engine: format check, the
// two cache tiers, the registry call and the offline policy fallback.
package service

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/format"
	"vatchecker/internal/vat/metrics"
	"vatchecker/internal/vat/ports"
	"vatchecker/internal/vat/providers"
	id "vatchecker/pkg/domain"
)

// DefaultFreshnessWindow is how long a registry answer is reused.
const DefaultFreshnessWindow = 24 * time.Hour

// CheckRequest is one validation call. A zero AddressID means the number
// is not attached to an address and nothing is persisted.
type CheckRequest struct {
	AddressID id.AddressID
	Company   string
	RawVAT    string
	Country   country.Code
}

// Service orchestrates VAT number validation.
type Service struct {
	validator *format.Validator
	verifier  providers.Verifier
	cache     ports.TransientCache
	records   ports.RecordStore
	config    ports.ConfigProvider
	addresses ports.AddressProvider
	countries ports.CountryLookup
	auditor   ports.AuditPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	window    time.Duration
	inflight  singleflight.Group
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAuditPublisher sets the sink for validation decisions.
func WithAuditPublisher(p ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// WithFreshnessWindow overrides how long registry answers are reused.
func WithFreshnessWindow(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithAddresses enables address-based operations.
func WithAddresses(p ports.AddressProvider) Option {
	return func(s *Service) {
		s.addresses = p
	}
}

// WithCountries sets the country id <-> ISO code lookup. Required to
// persist records and for address-based operations.
func WithCountries(c ports.CountryLookup) Option {
	return func(s *Service) {
		s.countries = c
	}
}

// New creates the validation engine.
func New(
	validator *format.Validator,
	verifier providers.Verifier,
	cache ports.TransientCache,
	records ports.RecordStore,
	config ports.ConfigProvider,
	opts ...Option,
) (*Service, error) {
	if validator == nil {
		return nil, errors.New("format validator is required")
	}
	if verifier == nil {
		return nil, errors.New("registry verifier is required")
	}
	if cache == nil {
		return nil, errors.New("transient cache is required")
	}
	if records == nil {
		return nil, errors.New("record store is required")
	}
	if config == nil {
		return nil, errors.New("config provider is required")
	}

	s := &Service{
		validator: validator,
		verifier:  verifier,
		cache:     cache,
		records:   records,
		config:    config,
		logger:    slog.Default(),
		window:    DefaultFreshnessWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LiveModeEnabled reports whether the operator has the engine switched on.
func (s *Service) LiveModeEnabled() bool {
	return s.config.LiveModeEnabled()
}
