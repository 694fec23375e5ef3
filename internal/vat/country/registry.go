// Package country holds the static table of EU VAT-participating countries
// and their VAT number formats.
package country

import (
	"regexp"
	"slices"
)

// Code is an ISO 3166-1 alpha-2 country code as used by the host platform.
type Code string

func (c Code) String() string { return string(c) }

// Format describes how one country's VAT numbers look once normalized.
type Format struct {
	Code Code
	// VIESCode is the member-state code the registry expects. It differs from
	// the ISO code for Greece (EL) and Northern Ireland (XI).
	VIESCode string
	Pattern  *regexp.Regexp
}

// Matches reports whether a normalized number fully matches the format.
func (f Format) Matches(number string) bool {
	return f.Pattern.MatchString(number)
}

func anchored(alternates ...string) *regexp.Regexp {
	expr := "^(?:"
	for i, alt := range alternates {
		if i > 0 {
			expr += "|"
		}
		expr += alt
	}
	return regexp.MustCompile(expr + ")$")
}

var northernIreland = anchored(`\d{9}`, `\d{12}`, `GD\d{3}`, `HA\d{3}`)

// formats covers every code the host may send. GB is kept as an alias for
// Northern Ireland traders, who are still registered in VIES under XI.
var formats = map[Code]Format{
	"AT": {Code: "AT", VIESCode: "AT", Pattern: anchored(`U\d{8}`)},
	"BE": {Code: "BE", VIESCode: "BE", Pattern: anchored(`[01]\d{9}`)},
	"BG": {Code: "BG", VIESCode: "BG", Pattern: anchored(`\d{9,10}`)},
	"CY": {Code: "CY", VIESCode: "CY", Pattern: anchored(`\d{8}[A-Z]`)},
	"CZ": {Code: "CZ", VIESCode: "CZ", Pattern: anchored(`\d{8,10}`)},
	"DE": {Code: "DE", VIESCode: "DE", Pattern: anchored(`\d{9}`)},
	"DK": {Code: "DK", VIESCode: "DK", Pattern: anchored(`\d{8}`)},
	"EE": {Code: "EE", VIESCode: "EE", Pattern: anchored(`\d{9}`)},
	"ES": {Code: "ES", VIESCode: "ES", Pattern: anchored(`[A-Z0-9]\d{7}[A-Z0-9]`)},
	"FI": {Code: "FI", VIESCode: "FI", Pattern: anchored(`\d{8}`)},
	"FR": {Code: "FR", VIESCode: "FR", Pattern: anchored(`[A-HJ-NP-Z0-9]{2}\d{9}`)},
	"GR": {Code: "GR", VIESCode: "EL", Pattern: anchored(`\d{9}`)},
	"HR": {Code: "HR", VIESCode: "HR", Pattern: anchored(`\d{11}`)},
	"HU": {Code: "HU", VIESCode: "HU", Pattern: anchored(`\d{8}`)},
	// Current format plus the two legacy ones (7 digits + letter, and digit-letter-5 digits-letter).
	"IE": {Code: "IE", VIESCode: "IE", Pattern: anchored(`\d{7}[A-W][A-IW]?`, `\d[A-Z]\d{5}[A-W]`)},
	"IT": {Code: "IT", VIESCode: "IT", Pattern: anchored(`\d{11}`)},
	"LT": {Code: "LT", VIESCode: "LT", Pattern: anchored(`\d{9}`, `\d{12}`)},
	"LU": {Code: "LU", VIESCode: "LU", Pattern: anchored(`\d{8}`)},
	"LV": {Code: "LV", VIESCode: "LV", Pattern: anchored(`\d{11}`)},
	"MT": {Code: "MT", VIESCode: "MT", Pattern: anchored(`\d{8}`)},
	"NL": {Code: "NL", VIESCode: "NL", Pattern: anchored(`\d{9}B\d{2}`)},
	"PL": {Code: "PL", VIESCode: "PL", Pattern: anchored(`\d{10}`)},
	"PT": {Code: "PT", VIESCode: "PT", Pattern: anchored(`\d{9}`)},
	"RO": {Code: "RO", VIESCode: "RO", Pattern: anchored(`[1-9]\d{1,9}`)},
	"SE": {Code: "SE", VIESCode: "SE", Pattern: anchored(`\d{10}01`)},
	"SI": {Code: "SI", VIESCode: "SI", Pattern: anchored(`\d{8}`)},
	"SK": {Code: "SK", VIESCode: "SK", Pattern: anchored(`\d{10}`)},
	"XI": {Code: "XI", VIESCode: "XI", Pattern: northernIreland},
	"GB": {Code: "GB", VIESCode: "XI", Pattern: northernIreland},
}

// DefaultEnabled lists the codes enabled when the operator does not narrow
// the set: the member states plus Northern Ireland. The GB alias is opt-in.
func DefaultEnabled() []Code {
	out := make([]Code, 0, len(formats))
	for code := range formats {
		if code != "GB" {
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return out
}

// All returns every known code, sorted.
func All() []Code {
	out := make([]Code, 0, len(formats))
	for code := range formats {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

// IsEU reports whether code is in the full EU list, regardless of which
// countries the operator enabled.
func IsEU(code Code) bool {
	_, ok := formats[code]
	return ok
}

// Registry is the enabled subset of the full table. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	enabled map[Code]Format
}

// NewRegistry builds a registry restricted to enabled. Unknown codes are
// ignored; an empty list enables DefaultEnabled.
func NewRegistry(enabled []Code) *Registry {
	if len(enabled) == 0 {
		enabled = DefaultEnabled()
	}
	r := &Registry{enabled: make(map[Code]Format, len(enabled))}
	for _, code := range enabled {
		if f, ok := formats[code]; ok {
			r.enabled[code] = f
		}
	}
	return r
}

// Lookup returns the format of an enabled country.
func (r *Registry) Lookup(code Code) (Format, bool) {
	f, ok := r.enabled[code]
	return f, ok
}

// IsEnabled reports whether code is enabled.
func (r *Registry) IsEnabled(code Code) bool {
	_, ok := r.enabled[code]
	return ok
}

// Enabled returns the enabled codes, sorted.
func (r *Registry) Enabled() []Code {
	out := make([]Code, 0, len(r.enabled))
	for code := range r.enabled {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}
