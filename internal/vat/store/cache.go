package store

import (
	"time"

	"vatchecker/internal/vat/models"
)

// DefaultPolicyTTL matches the default VIES breaker cooldown: an outage
// answer is reused until the registry is worth probing again.
const DefaultPolicyTTL = 30 * time.Second

// ttlFor returns how long outcome may be served from a transient tier.
func ttlFor(outcome models.Outcome, cacheTTL, policyTTL time.Duration) time.Duration {
	if outcome.Source == models.SourceOfflinePolicy {
		return min(policyTTL, cacheTTL)
	}
	return cacheTTL
}
