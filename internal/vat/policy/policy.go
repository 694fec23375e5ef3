// Package policy decides the outcome of a validation when the VAT registry
// cannot be reached.
package policy

import (
	"fmt"
	"strings"

	"vatchecker/internal/vat/models"
)

// Policy is the configured offline behaviour.
type Policy string

const (
	AlwaysInvalid     Policy = "always-invalid"
	AlwaysValid       Policy = "always-valid"
	PreviousOrInvalid Policy = "previous-or-invalid"
	PreviousOrValid   Policy = "previous-or-valid"
)

// Resolver turns the last known record (nil when none exists) into a decision.
type Resolver func(previous *models.ValidationRecord) bool

var resolvers = map[Policy]Resolver{
	AlwaysInvalid:     alwaysInvalid,
	AlwaysValid:       alwaysValid,
	PreviousOrInvalid: previousOr(false),
	PreviousOrValid:   previousOr(true),
}

func alwaysInvalid(*models.ValidationRecord) bool { return false }

func alwaysValid(*models.ValidationRecord) bool { return true }

func previousOr(fallback bool) Resolver {
	return func(previous *models.ValidationRecord) bool {
		if previous == nil {
			return fallback
		}
		return previous.Valid
	}
}

// Parse validates a policy name from configuration.
// The legacy numeric settings 0-3 are accepted in declaration order.
func Parse(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AlwaysInvalid), "0":
		return AlwaysInvalid, nil
	case string(AlwaysValid), "1":
		return AlwaysValid, nil
	case string(PreviousOrInvalid), "2":
		return PreviousOrInvalid, nil
	case string(PreviousOrValid), "3":
		return PreviousOrValid, nil
	}
	return "", fmt.Errorf("unknown offline policy %q", s)
}

// NeedsPrevious reports whether the policy reads the last known record.
func (p Policy) NeedsPrevious() bool {
	return p == PreviousOrInvalid || p == PreviousOrValid
}

func (p Policy) String() string { return string(p) }

// Resolve applies p to previous. An unknown policy resolves to invalid.
func Resolve(p Policy, previous *models.ValidationRecord) bool {
	r, ok := resolvers[p]
	if !ok {
		return false
	}
	return r(previous)
}

// All returns every policy, for configuration help and tests.
func All() []Policy {
	return []Policy{AlwaysInvalid, AlwaysValid, PreviousOrInvalid, PreviousOrValid}
}
