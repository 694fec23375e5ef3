package service

import (
	"context"

	"vatchecker/internal/audit"
	"vatchecker/internal/vat/models"
	id "vatchecker/pkg/domain"
)

// ExemptionDecision tells the host whether an address may order without VAT.
// The host applies GroupID to the customer when Exempt is true.
type ExemptionDecision struct {
	Exempt  bool            `json:"exempt"`
	GroupID int64           `json:"group_id"`
	Outcome *models.Outcome `json:"outcome,omitempty"`
}

// Exemption reports whether the address qualifies for intra-community
// reverse charge: it carries a VAT number the registry accepts and lies
// outside the shop's origin country.
func (s *Service) Exemption(ctx context.Context, addressID id.AddressID) (*ExemptionDecision, error) {
	addr, code, err := s.resolveAddress(ctx, addressID)
	if err != nil {
		return nil, err
	}

	decision := &ExemptionDecision{GroupID: s.config.NoTaxGroupID()}
	if !addr.HasVATNumber() {
		return decision, nil
	}

	outcome, err := s.check(ctx, CheckRequest{
		AddressID: addr.ID,
		Company:   addr.Company,
		RawVAT:    addr.VATNumber,
		Country:   code,
	}, addr.CountryID)
	if err != nil {
		return nil, err
	}
	decision.Outcome = outcome
	decision.Exempt = outcome.IsValid() && addr.CountryID != s.config.OriginCountryID()

	reason := "taxable"
	if decision.Exempt {
		reason = "exempt"
	}
	s.emit(ctx, audit.Event{
		Action:    audit.ActionExemptionEvaluated,
		AddressID: int64(addr.ID),
		Country:   string(code),
		VATNumber: addr.VATNumber,
		Status:    string(outcome.Status),
		Source:    string(outcome.Source),
		Reason:    reason,
	})
	return decision, nil
}
