// Package vies implements the Remote Verifier against the EU VIES SOAP service.
package vies

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"vatchecker/internal/vat/metrics"
	"vatchecker/internal/vat/providers"
	"vatchecker/pkg/platform/circuit"
)

const (
	// ProviderID identifies this client in errors, logs and metrics.
	ProviderID = "vies"

	// DefaultURL is the public checkVat endpoint.
	DefaultURL = "https://ec.europa.eu/taxation_customs/vies/services/checkVatService"

	// DefaultTimeout bounds a single call. VIES publishes no SLA.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 64 << 10
)

// Client calls VIES checkVat. It performs exactly one attempt per Verify and
// is safe for concurrent use.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuit.Breaker
	tracer     trace.Tracer
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout bounds each call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit throttles outbound calls to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
		}
	}
}

// WithBreaker makes calls fail fast while the registry keeps failing.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates a VIES client for url (DefaultURL when empty).
func New(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tracer:     otel.Tracer("vatchecker/vies"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ID() string { return ProviderID }

// Verify asks VIES whether number is registered in the member state viesCode.
func (c *Client) Verify(ctx context.Context, viesCode, number string) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "vies.checkVat", trace.WithAttributes(
		attribute.String("vat.country", viesCode),
	))
	defer span.End()

	start := time.Now()
	valid, err := c.call(ctx, viesCode, number)

	result := "invalid"
	if err != nil {
		result = string(providers.GetCategory(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
	} else if valid {
		result = "valid"
	}
	span.SetAttributes(attribute.String("vat.result", result))
	c.metrics.ObserveRemoteCall(result, time.Since(start))

	return valid, err
}

func (c *Client) call(ctx context.Context, viesCode, number string) (bool, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return false, providers.NewProviderError(providers.ErrorProviderOutage, ProviderID, "circuit open", nil)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return false, c.fail(providers.NewProviderError(providers.ErrorCanceled, ProviderID, "canceled while rate limited", err))
			}
			return false, c.fail(providers.NewProviderError(providers.ErrorRateLimited, ProviderID, "rate limit wait", err))
		}
	}

	payload, err := encodeRequest(viesCode, number)
	if err != nil {
		return false, providers.NewProviderError(providers.ErrorInternal, ProviderID, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return false, providers.NewProviderError(providers.ErrorInternal, ProviderID, "build request", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, c.fail(classifyTransport(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return false, c.fail(classifyTransport(err))
	}

	// Faults arrive as HTTP 500 with a SOAP body, so decode before checking status.
	result, fault, decodeErr := decodeResponse(body)
	switch {
	case decodeErr == nil && fault != nil:
		return false, c.fail(providers.NewProviderError(faultCategory(fault), ProviderID,
			"soap fault "+fault.String, nil))
	case resp.StatusCode >= http.StatusInternalServerError:
		return false, c.fail(providers.NewProviderError(providers.ErrorProviderOutage, ProviderID,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil))
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, c.fail(providers.NewProviderError(providers.ErrorRateLimited, ProviderID,
			"too many requests", nil))
	case resp.StatusCode >= http.StatusBadRequest:
		return false, c.fail(providers.NewProviderError(providers.ErrorBadData, ProviderID,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil))
	case decodeErr != nil:
		return false, c.fail(providers.NewProviderError(providers.ErrorBadData, ProviderID, "malformed response", decodeErr))
	case result == nil:
		return false, c.fail(providers.NewProviderError(providers.ErrorBadData, ProviderID, "missing checkVatResponse", nil))
	}

	c.succeed()
	return result.Valid, nil
}

// fail records err against the breaker. Cancellations are not registry
// failures and only release a pending probe.
func (c *Client) fail(err *providers.ProviderError) error {
	if c.breaker == nil {
		return err
	}
	if err.Category == providers.ErrorCanceled {
		c.breaker.Abandon()
		return err
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.metrics.RecordBreakerTransition(string(circuit.StateOpen))
		c.logger.Warn("vies circuit opened", "breaker", c.breaker.Name(), "error", err)
	}
	return err
}

func (c *Client) succeed() {
	if c.breaker == nil {
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.metrics.RecordBreakerTransition(string(circuit.StateClosed))
		c.logger.Info("vies circuit closed", "breaker", c.breaker.Name())
	}
}

func classifyTransport(err error) *providers.ProviderError {
	if errors.Is(err, context.Canceled) {
		return providers.NewProviderError(providers.ErrorCanceled, ProviderID, "request canceled", err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return providers.NewProviderError(providers.ErrorTimeout, ProviderID, "request timed out", err)
	}
	return providers.NewProviderError(providers.ErrorProviderOutage, ProviderID, "transport failure", err)
}
