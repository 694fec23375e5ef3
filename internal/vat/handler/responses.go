package handler

import (
	"time"

	"vatchecker/internal/vat/models"
)

// ValidateResponse keeps the storefront contract: valid is null when the
// country is outside the EU or validation is switched off.
type ValidateResponse struct {
	Valid *bool  `json:"valid"`
	Error string `json:"error"`
	IsEU  bool   `json:"is_eu"`
}

// AddressValidationResponse answers the address form hook. Acceptable is
// false only when the form must show Error on the VAT number field.
type AddressValidationResponse struct {
	Valid      *bool  `json:"valid"`
	Error      string `json:"error"`
	Acceptable bool   `json:"acceptable"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toAddressValidationResponse(outcome *models.Outcome) AddressValidationResponse {
	return AddressValidationResponse{
		Valid:      outcome.Valid(),
		Error:      outcome.Reason,
		Acceptable: outcome.Status != models.StatusInvalid,
	}
}
