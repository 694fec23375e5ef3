package vies

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vatchecker/internal/vat/providers"
	"vatchecker/pkg/platform/circuit"
)

const validResponse = `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Header/>
  <env:Body>
    <ns2:checkVatResponse xmlns:ns2="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
      <ns2:countryCode>NL</ns2:countryCode>
      <ns2:vatNumber>123456789B01</ns2:vatNumber>
      <ns2:requestDate>2026-03-01+01:00</ns2:requestDate>
      <ns2:valid>%s</ns2:valid>
      <ns2:name>ACME B.V.</ns2:name>
      <ns2:address>---</ns2:address>
    </ns2:checkVatResponse>
  </env:Body>
</env:Envelope>`

const faultResponse = `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Body>
    <env:Fault>
      <faultcode>env:Server</faultcode>
      <faultstring>%s</faultstring>
    </env:Fault>
  </env:Body>
</env:Envelope>`

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

type ClientSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) newClient(h http.Handler, opts ...Option) *Client {
	srv := httptest.NewServer(h)
	s.T().Cleanup(srv.Close)
	return New(srv.URL, opts...)
}

// =============================================================================
// Successful responses
// =============================================================================

func (s *ClientSuite) TestVerify_SendsCheckVatEnvelope() {
	var body string
	client := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		s.Equal(http.MethodPost, r.Method)
		s.Contains(r.Header.Get("Content-Type"), "text/xml")
		respond(http.StatusOK, strings.Replace(validResponse, "%s", "true", 1))(w, r)
	}))

	valid, err := client.Verify(context.Background(), "NL", "123456789B01")
	s.Require().NoError(err)
	s.True(valid)
	s.Contains(body, "<urn:countryCode>NL</urn:countryCode>")
	s.Contains(body, "<urn:vatNumber>123456789B01</urn:vatNumber>")
	s.Contains(body, `xmlns:urn="urn:ec.europa.eu:taxud:vies:services:checkVat:types"`)
}

func (s *ClientSuite) TestVerify_InvalidNumber() {
	client := s.newClient(respond(http.StatusOK, strings.Replace(validResponse, "%s", "false", 1)))

	valid, err := client.Verify(context.Background(), "NL", "123456789B01")
	s.Require().NoError(err)
	s.False(valid)
}

// =============================================================================
// Failures are normalized into the provider taxonomy
// =============================================================================

func (s *ClientSuite) TestVerify_Faults() {
	tests := []struct {
		fault    string
		category providers.ErrorCategory
	}{
		{"MS_UNAVAILABLE", providers.ErrorProviderOutage},
		{"SERVICE_UNAVAILABLE", providers.ErrorProviderOutage},
		{"TIMEOUT", providers.ErrorTimeout},
		{"MS_MAX_CONCURRENT_REQ", providers.ErrorRateLimited},
		{"GLOBAL_MAX_CONCURRENT_REQ", providers.ErrorRateLimited},
		{"INVALID_INPUT", providers.ErrorBadData},
	}
	for _, tt := range tests {
		s.Run(tt.fault, func() {
			client := s.newClient(respond(http.StatusInternalServerError, strings.Replace(faultResponse, "%s", tt.fault, 1)))

			_, err := client.Verify(context.Background(), "DE", "123456789")
			s.Require().Error(err)
			s.True(providers.IsRemote(err))
			s.Equal(tt.category, providers.GetCategory(err))
		})
	}
}

func (s *ClientSuite) TestVerify_MalformedResponse() {
	client := s.newClient(respond(http.StatusOK, "<html>maintenance</html"))

	_, err := client.Verify(context.Background(), "DE", "123456789")
	s.Require().Error(err)
	s.Equal(providers.ErrorBadData, providers.GetCategory(err))
}

func (s *ClientSuite) TestVerify_MissingResponseElement() {
	client := s.newClient(respond(http.StatusOK, `<Envelope><Body></Body></Envelope>`))

	_, err := client.Verify(context.Background(), "DE", "123456789")
	s.Require().Error(err)
	s.Equal(providers.ErrorBadData, providers.GetCategory(err))
}

func (s *ClientSuite) TestVerify_GatewayError() {
	client := s.newClient(respond(http.StatusBadGateway, "bad gateway"))

	_, err := client.Verify(context.Background(), "DE", "123456789")
	s.Require().Error(err)
	s.Equal(providers.ErrorProviderOutage, providers.GetCategory(err))
}

func (s *ClientSuite) TestVerify_Timeout() {
	release := make(chan struct{})
	s.T().Cleanup(func() { close(release) })
	client := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}), WithTimeout(50*time.Millisecond))

	_, err := client.Verify(context.Background(), "FR", "12345678901")
	s.Require().Error(err)
	s.Equal(providers.ErrorTimeout, providers.GetCategory(err))
}

func (s *ClientSuite) TestVerify_ConnectionRefused() {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Verify(context.Background(), "DE", "123456789")
	s.Require().Error(err)
	s.Equal(providers.ErrorProviderOutage, providers.GetCategory(err))
}

// =============================================================================
// Circuit breaker
// =============================================================================

func (s *ClientSuite) TestVerify_OpenBreakerFailsFast() {
	var calls atomic.Int32
	breaker := circuit.New(ProviderID, circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	client := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		respond(http.StatusServiceUnavailable, "down")(w, r)
	}), WithBreaker(breaker))

	for range 2 {
		_, err := client.Verify(context.Background(), "DE", "123456789")
		s.Require().Error(err)
	}
	s.True(breaker.IsOpen())

	_, err := client.Verify(context.Background(), "DE", "123456789")
	s.Require().Error(err)
	s.Equal(providers.ErrorProviderOutage, providers.GetCategory(err))
	s.Equal(int32(2), calls.Load(), "open breaker must not reach the registry")
}

// Justification: a client disconnect says nothing about VIES health, so it
// must not push the breaker towards open for every other caller.
func (s *ClientSuite) TestVerify_CanceledCallerDoesNotTripBreaker() {
	received := make(chan struct{}, 1)
	release := make(chan struct{})
	s.T().Cleanup(func() { close(release) })
	breaker := circuit.New(ProviderID, circuit.WithFailureThreshold(1), circuit.WithCooldown(time.Hour))
	client := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}), WithBreaker(breaker))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-received
		cancel()
	}()

	_, err := client.Verify(ctx, "NL", "123456789B01")
	s.Require().Error(err)
	s.Equal(providers.ErrorCanceled, providers.GetCategory(err))
	s.False(breaker.IsOpen())
}

func (s *ClientSuite) TestVerify_CanceledWhileRateLimited() {
	breaker := circuit.New(ProviderID, circuit.WithFailureThreshold(1))
	client := s.newClient(respond(http.StatusOK, strings.Replace(validResponse, "%s", "true", 1)),
		WithRateLimit(1, 1), WithBreaker(breaker))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Verify(ctx, "NL", "123456789B01")
	s.Require().Error(err)
	s.Equal(providers.ErrorCanceled, providers.GetCategory(err))
	s.False(breaker.IsOpen())
}

func TestEncodeRequest(t *testing.T) {
	out, err := encodeRequest("EL", "123456789")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<?xml"))
	assert.Contains(t, string(out), "<soapenv:Envelope")
	assert.Contains(t, string(out), "<urn:countryCode>EL</urn:countryCode>")
}
