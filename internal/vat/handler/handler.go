package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler-mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/format"
	"vatchecker/internal/vat/models"
	"vatchecker/internal/vat/service"
	id "vatchecker/pkg/domain"
	dErrors "vatchecker/pkg/domain-errors"
	"vatchecker/pkg/platform/httputil"
	"vatchecker/pkg/platform/sentinel"
	"vatchecker/pkg/requestcontext"
)

// MinCheckableLength is the shortest cleaned number worth sending to the
// engine while the customer is still typing.
const MinCheckableLength = 8

// Service defines the interface for VAT validation operations.
type Service interface {
	CheckVAT(ctx context.Context, req service.CheckRequest) (*models.Outcome, error)
	CheckAddress(ctx context.Context, addressID id.AddressID) (*models.Outcome, error)
	Exemption(ctx context.Context, addressID id.AddressID) (*service.ExemptionDecision, error)
	LiveModeEnabled() bool
}

// TokenService issues and verifies anti-forgery form tokens.
type TokenService interface {
	Issue() (string, time.Time, error)
	ValidateToken(token string) error
}

// CountryResolver maps host country ids to ISO codes.
type CountryResolver interface {
	ISOByID(ctx context.Context, countryID id.CountryID) (country.Code, error)
}

// Handler handles VAT validation endpoints.
type Handler struct {
	logger    *slog.Logger
	vat       Service
	tokens    TokenService
	countries CountryResolver
}

// New creates a new VAT Handler.
func New(vat Service, tokens TokenService, countries CountryResolver, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		vat:       vat,
		tokens:    tokens,
		countries: countries,
	}
}

// Register registers the VAT routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/vatchecker", func(r chi.Router) {
		r.Get("/token", h.handleIssueToken)
		r.Post("/validate", h.handleValidate)
		r.Post("/addresses/{addressID}/validate", h.handleValidateAddress)
		r.Get("/addresses/{addressID}/exemption", h.handleExemption)
	})
}

// handleIssueToken mints a form token for the storefront script.
func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, expiresAt, err := h.tokens.Issue()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue form token",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to issue token"))
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// handleValidate answers the storefront's live check of the VAT field.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.tokens.ValidateToken(req.FormToken()); err != nil {
		h.logger.WarnContext(ctx, "rejected validation request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	code, err := h.countries.ISOByID(ctx, req.countryID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		h.logger.ErrorContext(ctx, "failed to resolve country",
			"request_id", requestID,
			"country_id", req.countryID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to resolve country"))
		return
	}
	isEU := country.IsEU(code)
	if !h.vat.LiveModeEnabled() {
		// Disabled answers null for any input, EU or not.
		httputil.WriteJSON(w, http.StatusOK, ValidateResponse{IsEU: isEU})
		return
	}
	if !isEU {
		httputil.WriteJSON(w, http.StatusOK, ValidateResponse{Error: format.MessageNotEUCountry})
		return
	}
	if len(format.Clean(req.VATNumber)) < MinCheckableLength {
		httputil.WriteJSON(w, http.StatusOK, ValidateResponse{IsEU: true})
		return
	}

	outcome, err := h.vat.CheckVAT(ctx, service.CheckRequest{
		Company: req.Company,
		RawVAT:  req.VATNumber,
		Country: code,
	})
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to validate VAT number")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ValidateResponse{
		Valid: outcome.Valid(),
		Error: outcome.Reason,
		IsEU:  isEU,
	})
}

// handleValidateAddress is the host's address form hook.
func (h *Handler) handleValidateAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addressID, err := id.ParseAddressID(chi.URLParam(r, "addressID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.vat.CheckAddress(ctx, addressID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to validate address")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAddressValidationResponse(outcome))
}

// handleExemption tells the host whether the address may order without VAT.
func (h *Handler) handleExemption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	addressID, err := id.ParseAddressID(chi.URLParam(r, "addressID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	decision, err := h.vat.Exemption(ctx, addressID)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to evaluate exemption")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, decision)
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	if de, ok := dErrors.As(err); ok && de.Code != dErrors.CodeInternal {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
}
