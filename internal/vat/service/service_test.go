package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vatchecker/internal/audit"
	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/format"
	"vatchecker/internal/vat/models"
	"vatchecker/internal/vat/policy"
	portmocks "vatchecker/internal/vat/ports/mocks"
	"vatchecker/internal/vat/providers"
	providermocks "vatchecker/internal/vat/providers/mocks"
	"vatchecker/internal/vat/store"
	id "vatchecker/pkg/domain"
	dErrors "vatchecker/pkg/domain-errors"
	"vatchecker/pkg/platform/sentinel"
	"vatchecker/pkg/requestcontext"
)

const (
	countryNL = id.CountryID(13)
	countryDE = id.CountryID(1)
	countryFR = id.CountryID(8)

	addressID = id.AddressID(42)
)

type stubConfig struct {
	registry *country.Registry
	live     bool
	policy   policy.Policy
	origin   id.CountryID
	group    int64
}

func (c *stubConfig) IsEnabledCountry(code country.Code) bool { return c.registry.IsEnabled(code) }
func (c *stubConfig) OriginCountryID() id.CountryID           { return c.origin }
func (c *stubConfig) OfflinePolicy() policy.Policy            { return c.policy }
func (c *stubConfig) LiveModeEnabled() bool                   { return c.live }
func (c *stubConfig) NoTaxGroupID() int64                     { return c.group }

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	ctrl      *gomock.Controller
	verifier  *providermocks.MockVerifier
	countries *portmocks.MockCountryLookup
	addresses *portmocks.MockAddressProvider
	cache     *store.InMemoryCache
	records   *store.InMemoryRecordStore
	sink      *audit.MemorySink
	config    *stubConfig
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.ctrl = gomock.NewController(s.T())
	s.verifier = providermocks.NewMockVerifier(s.ctrl)
	s.countries = portmocks.NewMockCountryLookup(s.ctrl)
	s.addresses = portmocks.NewMockAddressProvider(s.ctrl)
	s.cache = store.NewInMemoryCache(DefaultFreshnessWindow)
	s.records = store.NewInMemoryRecordStore()
	s.sink = audit.NewMemorySink()

	registry := country.NewRegistry(nil)
	s.config = &stubConfig{
		registry: registry,
		live:     true,
		policy:   policy.AlwaysInvalid,
		origin:   countryDE,
		group:    3,
	}

	s.countries.EXPECT().IDByISO(gomock.Any(), country.Code("NL")).Return(countryNL, nil).AnyTimes()
	s.countries.EXPECT().IDByISO(gomock.Any(), country.Code("DE")).Return(countryDE, nil).AnyTimes()
	s.countries.EXPECT().IDByISO(gomock.Any(), country.Code("FR")).Return(countryFR, nil).AnyTimes()
	s.countries.EXPECT().ISOByID(gomock.Any(), countryNL).Return(country.Code("NL"), nil).AnyTimes()
	s.countries.EXPECT().ISOByID(gomock.Any(), countryDE).Return(country.Code("DE"), nil).AnyTimes()

	publisher, err := audit.NewPublisher(s.sink, audit.WithLogger(discardLogger()))
	s.Require().NoError(err)

	s.service, err = New(format.New(registry), s.verifier, s.cache, s.records, s.config,
		WithLogger(discardLogger()),
		WithCountries(s.countries),
		WithAddresses(s.addresses),
		WithAuditPublisher(publisher),
	)
	s.Require().NoError(err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func timeoutErr() error {
	return providers.NewProviderError(providers.ErrorTimeout, "vies", "registry timed out", context.DeadlineExceeded)
}

func (s *ServiceSuite) storedRecord(countryID id.CountryID, number string, valid bool, source models.Source, checkedAt time.Time) {
	record := &models.ValidationRecord{
		AddressID:     addressID,
		CountryID:     countryID,
		VATNumber:     number,
		Valid:         valid,
		Source:        source,
		LastCheckedAt: checkedAt,
	}
	if valid {
		record.LastValidAt = &checkedAt
	}
	_, err := s.records.Upsert(context.Background(), record)
	s.Require().NoError(err)
}

// =============================================================================
// Construction
// =============================================================================

func (s *ServiceSuite) TestNewRequiresCollaborators() {
	validator := format.New(country.NewRegistry(nil))
	_, err := New(nil, s.verifier, s.cache, s.records, s.config)
	s.Error(err)
	_, err = New(validator, nil, s.cache, s.records, s.config)
	s.Error(err)
	_, err = New(validator, s.verifier, nil, s.records, s.config)
	s.Error(err)
	_, err = New(validator, s.verifier, s.cache, nil, s.config)
	s.Error(err)
	_, err = New(validator, s.verifier, s.cache, s.records, nil)
	s.Error(err)
}

// =============================================================================
// Scenarios
// =============================================================================

func (s *ServiceSuite) TestNetherlandsValidNumberIsPersisted() {
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(true, nil).Times(1)

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{
		AddressID: addressID,
		Company:   "ACME B.V.",
		RawVAT:    "NL 1234.5678.9B01",
		Country:   "NL",
	})
	s.Require().NoError(err)
	s.Equal(models.StatusValid, outcome.Status)
	s.Equal(models.SourceRegistry, outcome.Source)
	s.Empty(outcome.Reason)

	record, err := s.records.Find(context.Background(), addressID, countryNL, "123456789B01")
	s.Require().NoError(err)
	s.True(record.Valid)
	s.Equal("ACME B.V.", record.Company)
	s.Equal(models.SourceRegistry, record.Source)
	s.Require().NotNil(record.LastValidAt)
	s.Equal(s.now, *record.LastValidAt)

	events := s.sink.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionVATValidated, events[0].Action)
	s.Equal("valid", events[0].Status)
}

func (s *ServiceSuite) TestGermanBadFormatSkipsRegistry() {
	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "AB12", Country: "DE"})
	s.Require().NoError(err)
	s.Equal(models.StatusInvalid, outcome.Status)
	s.Equal(format.MessageBadFormat, outcome.Reason)
	s.Equal(0, s.cache.Len())
	s.Equal(0, s.records.Len())
	s.Empty(s.sink.Events())
}

func (s *ServiceSuite) TestFrenchTimeoutAlwaysInvalid() {
	s.verifier.EXPECT().Verify(gomock.Any(), "FR", "12345678901").Return(false, timeoutErr())

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "FR12345678901", Country: "FR"})
	s.Require().NoError(err)
	s.Equal(models.StatusInvalid, outcome.Status)
	s.Equal(models.SourceOfflinePolicy, outcome.Source)
	s.Empty(outcome.Reason, "registry failures are never shown to users")

	record, err := s.records.Find(context.Background(), addressID, countryFR, "12345678901")
	s.Require().NoError(err)
	s.False(record.Valid)
	s.Equal(models.SourceOfflinePolicy, record.Source)
	s.Nil(record.LastValidAt)
	s.Equal(1, s.cache.Len(), "policy outcomes are cached like registry ones")
}

func (s *ServiceSuite) TestDisabledReturnsNull() {
	s.config.live = false

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(models.StatusDisabled, outcome.Status)
	s.Nil(outcome.Valid())
	s.Empty(outcome.Reason)
}

// =============================================================================
// Format and country gate
// =============================================================================

func (s *ServiceSuite) TestNonEnabledCountry() {
	for _, code := range []country.Code{"US", "GB", ""} {
		outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: "123456789", Country: code})
		s.Require().NoError(err)
		s.Equal(models.StatusInvalid, outcome.Status, code)
		s.Equal(format.MessageNotEUCountry, outcome.Reason, code)
	}
}

func (s *ServiceSuite) TestEmptyNumber() {
	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: " - ", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(format.MessageEmpty, outcome.Reason)
}

func (s *ServiceSuite) TestGreeceUsesVIESCode() {
	s.verifier.EXPECT().Verify(gomock.Any(), "EL", "123456789").Return(false, nil)

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: "EL123456789", Country: "GR"})
	s.Require().NoError(err)
	s.Equal(models.StatusInvalid, outcome.Status)
	s.Equal(models.MessageNotValid, outcome.Reason)
}

// =============================================================================
// Offline policies
// =============================================================================

func (s *ServiceSuite) TestAlwaysValidOnOutage() {
	s.config.policy = policy.AlwaysValid
	s.verifier.EXPECT().Verify(gomock.Any(), "DE", "123456789").Return(false, timeoutErr())

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: "DE123456789", Country: "DE"})
	s.Require().NoError(err)
	s.Equal(models.StatusValid, outcome.Status)
	s.Empty(outcome.Reason)
}

func (s *ServiceSuite) TestPreviousOrInvalidWithoutRecord() {
	s.config.policy = policy.PreviousOrInvalid
	s.verifier.EXPECT().Verify(gomock.Any(), "DE", "123456789").Return(false, timeoutErr())

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "DE123456789", Country: "DE"})
	s.Require().NoError(err)
	s.Equal(models.StatusInvalid, outcome.Status)
}

// Justification: the previous record is consulted regardless of age.
func (s *ServiceSuite) TestPreviousOrInvalidUsesStaleRecord() {
	s.config.policy = policy.PreviousOrInvalid
	s.storedRecord(countryDE, "123456789", true, models.SourceRegistry, s.now.Add(-72*time.Hour))
	s.verifier.EXPECT().Verify(gomock.Any(), "DE", "123456789").Return(false, timeoutErr())

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "DE123456789", Country: "DE"})
	s.Require().NoError(err)
	s.Equal(models.StatusValid, outcome.Status)
	s.Equal(models.SourceOfflinePolicy, outcome.Source)
}

func (s *ServiceSuite) TestPreviousOrValidUsesStaleInvalidRecord() {
	s.config.policy = policy.PreviousOrValid
	s.storedRecord(countryDE, "123456789", false, models.SourceRegistry, s.now.Add(-72*time.Hour))
	s.verifier.EXPECT().Verify(gomock.Any(), "DE", "123456789").Return(false, timeoutErr())

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "DE123456789", Country: "DE"})
	s.Require().NoError(err)
	s.Equal(models.StatusInvalid, outcome.Status)
}

// =============================================================================
// Caching
// =============================================================================

func (s *ServiceSuite) TestRepeatedCallsReachRegistryOnce() {
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(true, nil).Times(1)

	for i := 0; i < 3; i++ {
		outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: "NL123456789B01", Country: "NL"})
		s.Require().NoError(err)
		s.Equal(models.StatusValid, outcome.Status)
	}
}

func (s *ServiceSuite) TestConcurrentCallsCollapse() {
	var calls atomic.Int32
	release := make(chan struct{})
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").DoAndReturn(
		func(context.Context, string, string) (bool, error) {
			calls.Add(1)
			<-release
			return true, nil
		}).AnyTimes()

	const callers = 10
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: "NL123456789B01", Country: "NL"})
			s.NoError(err)
			s.Equal(models.StatusValid, outcome.Status)
		}()
	}
	s.Eventually(func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Equal(int32(1), calls.Load())
}

// =============================================================================
// Caller cancellation
// =============================================================================

// Justification: a client disconnect is not a registry outage. Remembering
// its policy answer would reject a valid number for the whole window.
func (s *ServiceSuite) TestCanceledCallerLeavesNoTrace() {
	var calls atomic.Int32
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").DoAndReturn(
		func(context.Context, string, string) (bool, error) {
			calls.Add(1)
			return false, providers.NewProviderError(providers.ErrorCanceled, "vies", "request canceled", context.Canceled)
		}).Times(1)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	outcome, err := s.service.CheckVAT(ctx, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(models.SourceOfflinePolicy, outcome.Source)
	s.Equal(models.StatusInvalid, outcome.Status)

	s.Eventually(func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	s.Equal(0, s.cache.Len())
	s.Equal(0, s.records.Len())
	s.Empty(s.sink.Events())

	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(true, nil)
	later := requestcontext.WithTime(context.Background(), s.now.Add(time.Hour))
	outcome, err = s.service.CheckVAT(later, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(models.StatusValid, outcome.Status)
	s.Equal(models.SourceRegistry, outcome.Source)
}

// Justification: the shared registry call must not inherit the first
// caller's cancellation, or one disconnect decides every waiter's answer.
func (s *ServiceSuite) TestCanceledCallerDoesNotAffectWaiters() {
	var (
		calls      atomic.Int32
		sharedLive atomic.Bool
	)
	release := make(chan struct{})
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").DoAndReturn(
		func(ctx context.Context, _, _ string) (bool, error) {
			calls.Add(1)
			<-release
			sharedLive.Store(ctx.Err() == nil)
			return true, nil
		}).Times(1)

	ctx, cancel := context.WithCancel(s.ctx)
	first := make(chan *models.Outcome, 1)
	go func() {
		outcome, err := s.service.CheckVAT(ctx, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
		s.NoError(err)
		first <- outcome
	}()
	s.Eventually(func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan *models.Outcome, 1)
	go func() {
		outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{RawVAT: "NL123456789B01", Country: "NL"})
		s.NoError(err)
		second <- outcome
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	abandoned := <-first
	s.Equal(models.SourceOfflinePolicy, abandoned.Source)
	s.Equal(0, s.cache.Len())
	s.Equal(0, s.records.Len())

	close(release)
	shared := <-second
	s.Equal(models.StatusValid, shared.Status)
	s.Equal(models.SourceRegistry, shared.Source)
	s.True(sharedLive.Load(), "shared call runs detached from the canceled caller")
	s.Equal(1, s.cache.Len())
	s.Len(s.sink.Events(), 1)
}

func (s *ServiceSuite) TestFreshRecordSkipsRegistry() {
	s.storedRecord(countryNL, "123456789B01", true, models.SourceRegistry, s.now.Add(-time.Hour))

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(models.StatusValid, outcome.Status)
	s.Equal(models.SourceStore, outcome.Source)
	s.Equal(1, s.cache.Len())
	s.Empty(s.sink.Events(), "store hits are not new decisions")
}

func (s *ServiceSuite) TestStaleRecordIsRechecked() {
	s.storedRecord(countryNL, "123456789B01", true, models.SourceRegistry, s.now.Add(-25*time.Hour))
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(false, nil)

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(models.StatusInvalid, outcome.Status)

	record, err := s.records.Find(context.Background(), addressID, countryNL, "123456789B01")
	s.Require().NoError(err)
	s.False(record.Valid)
	s.Require().NotNil(record.LastValidAt, "last valid time survives an invalid recheck")
}

// Justification: offline guesses must not suppress a real registry check.
func (s *ServiceSuite) TestOfflineRecordIsNeverFresh() {
	s.storedRecord(countryNL, "123456789B01", true, models.SourceOfflinePolicy, s.now.Add(-time.Minute))
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(true, nil)

	outcome, err := s.service.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(models.SourceRegistry, outcome.Source)
}

// =============================================================================
// Failure handling
// =============================================================================

func (s *ServiceSuite) TestPersistFailureStillReturnsOutcome() {
	records := portmocks.NewMockRecordStore(s.ctrl)
	records.EXPECT().Find(gomock.Any(), addressID, countryNL, "123456789B01").Return(nil, sentinel.ErrNotFound)
	records.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(true, nil)

	svc, err := New(format.New(s.config.registry), s.verifier, s.cache, records, s.config,
		WithLogger(discardLogger()),
		WithCountries(s.countries),
	)
	s.Require().NoError(err)

	outcome, err := svc.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().NoError(err)
	s.Equal(models.StatusValid, outcome.Status)
}

func (s *ServiceSuite) TestUnknownCountryIDFails() {
	countries := portmocks.NewMockCountryLookup(s.ctrl)
	countries.EXPECT().IDByISO(gomock.Any(), country.Code("NL")).Return(id.CountryID(0), sentinel.ErrNotFound)

	svc, err := New(format.New(s.config.registry), s.verifier, s.cache, s.records, s.config,
		WithLogger(discardLogger()),
		WithCountries(countries),
	)
	s.Require().NoError(err)

	_, err = svc.CheckVAT(s.ctx, CheckRequest{AddressID: addressID, RawVAT: "NL123456789B01", Country: "NL"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

// =============================================================================
// Address operations
// =============================================================================

func (s *ServiceSuite) TestCheckAddress() {
	s.addresses.EXPECT().Address(gomock.Any(), addressID).Return(&models.Address{
		ID: addressID, CountryID: countryNL, VATNumber: "NL123456789B01", Company: "ACME B.V.",
	}, nil)
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(true, nil)

	outcome, err := s.service.CheckAddress(s.ctx, addressID)
	s.Require().NoError(err)
	s.Equal(models.StatusValid, outcome.Status)
	s.Equal(1, s.records.Len())
}

func (s *ServiceSuite) TestCheckAddressNotFound() {
	s.addresses.EXPECT().Address(gomock.Any(), addressID).Return(nil, sentinel.ErrNotFound)

	_, err := s.service.CheckAddress(s.ctx, addressID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestExemptionForeignValidNumber() {
	s.addresses.EXPECT().Address(gomock.Any(), addressID).Return(&models.Address{
		ID: addressID, CountryID: countryNL, VATNumber: "NL123456789B01",
	}, nil)
	s.verifier.EXPECT().Verify(gomock.Any(), "NL", "123456789B01").Return(true, nil)

	decision, err := s.service.Exemption(s.ctx, addressID)
	s.Require().NoError(err)
	s.True(decision.Exempt)
	s.Equal(int64(3), decision.GroupID)
	s.Require().NotNil(decision.Outcome)

	events := s.sink.Events()
	s.Require().Len(events, 2)
	s.Equal(audit.ActionExemptionEvaluated, events[1].Action)
	s.Equal("exempt", events[1].Reason)
}

func (s *ServiceSuite) TestExemptionOriginCountryIsTaxable() {
	s.addresses.EXPECT().Address(gomock.Any(), addressID).Return(&models.Address{
		ID: addressID, CountryID: countryDE, VATNumber: "DE123456789",
	}, nil)
	s.verifier.EXPECT().Verify(gomock.Any(), "DE", "123456789").Return(true, nil)

	decision, err := s.service.Exemption(s.ctx, addressID)
	s.Require().NoError(err)
	s.False(decision.Exempt)
	s.True(decision.Outcome.IsValid())
}

func (s *ServiceSuite) TestExemptionWithoutVATNumber() {
	s.addresses.EXPECT().Address(gomock.Any(), addressID).Return(&models.Address{
		ID: addressID, CountryID: countryNL,
	}, nil)

	decision, err := s.service.Exemption(s.ctx, addressID)
	s.Require().NoError(err)
	s.False(decision.Exempt)
	s.Nil(decision.Outcome)
}
