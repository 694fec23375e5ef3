// Package format normalizes raw VAT numbers and checks them against the
// country formats before any registry call is made.
package format

import (
	"strings"

	"vatchecker/internal/vat/country"
)

// Kind classifies a format rejection.
type Kind string

const (
	KindEmpty        Kind = "empty"
	KindNotEUCountry Kind = "not_eu_country"
	KindBadFormat    Kind = "bad_format"
)

// User-facing messages, one per Kind.
const (
	MessageEmpty        = "VAT number is empty"
	MessageNotEUCountry = "Please select an EU country"
	MessageBadFormat    = "VAT number format invalid"
)

// Error is a local, non-retryable rejection of the input.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind) *Error {
	switch kind {
	case KindEmpty:
		return &Error{Kind: kind, Message: MessageEmpty}
	case KindNotEUCountry:
		return &Error{Kind: kind, Message: MessageNotEUCountry}
	default:
		return &Error{Kind: KindBadFormat, Message: MessageBadFormat}
	}
}

// Normalized is a VAT number that passed the format check.
type Normalized struct {
	Country country.Code
	// VIESCode is the member-state code to send to the registry.
	VIESCode string
	// Number has no country prefix, is uppercased and contains only [A-Z0-9].
	Number string
}

// Lookup resolves the format of an enabled country.
type Lookup interface {
	Lookup(code country.Code) (country.Format, bool)
}

// Validator normalizes VAT numbers against the enabled countries.
type Validator struct {
	countries Lookup
}

// New creates a Validator backed by countries.
func New(countries Lookup) *Validator {
	return &Validator{countries: countries}
}

// Normalize cleans raw and checks it against code's format.
//
// The country prefix (ISO code, or the VIES code for GR and GB) is stripped
// unless the cleaned string already matches the format, so normalizing a
// normalized number is a no-op even when it starts with prefix-like letters.
func (v *Validator) Normalize(code country.Code, raw string) (Normalized, error) {
	f, ok := v.countries.Lookup(code)
	if !ok {
		return Normalized{}, newError(KindNotEUCountry)
	}

	number := Clean(raw)
	if !f.Matches(number) {
		number = stripPrefix(number, string(f.Code), f.VIESCode)
	}
	if number == "" {
		return Normalized{}, newError(KindEmpty)
	}
	if !f.Matches(number) {
		return Normalized{}, newError(KindBadFormat)
	}

	return Normalized{Country: f.Code, VIESCode: f.VIESCode, Number: number}, nil
}

// Clean uppercases s and drops every character outside [A-Z0-9].
func Clean(s string) string {
	s = strings.ToUpper(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func stripPrefix(number string, prefixes ...string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(number, p) {
			return strings.TrimPrefix(number, p)
		}
	}
	return number
}
