package providers

//go:generate mockgen -source=provider.go -destination=mocks/provider-mocks.go -package=mocks

import "context"

// Verifier checks one VAT number against a remote registry.
//
// Verify returns the registry's validity flag. Every failure to obtain a
// definitive answer is returned as a *ProviderError.
type Verifier interface {
	ID() string
	Verify(ctx context.Context, viesCode, number string) (bool, error)
}
