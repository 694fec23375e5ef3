package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_Valid(t *testing.T) {
	now := time.Now()

	assert.Nil(t, DisabledOutcome(now).Valid(), "disabled maps to null")

	v := ValidOutcome(SourceRegistry, now).Valid()
	require.NotNil(t, v)
	assert.True(t, *v)

	v = InvalidOutcome(MessageNotValid, SourceRegistry, now).Valid()
	require.NotNil(t, v)
	assert.False(t, *v)

	assert.Empty(t, BoolOutcome(false, SourceOfflinePolicy, now).Reason)
}

func TestValidationRecord_IsFreshAt(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	rec := &ValidationRecord{Source: SourceRegistry, LastCheckedAt: now.Add(-23 * time.Hour)}
	assert.True(t, rec.IsFreshAt(now, window))

	rec.LastCheckedAt = now.Add(-24 * time.Hour)
	assert.False(t, rec.IsFreshAt(now, window), "window boundary is exclusive")

	offline := &ValidationRecord{Source: SourceOfflinePolicy, LastCheckedAt: now}
	assert.False(t, offline.IsFreshAt(now, window), "offline guesses are never fresh")

	var missing *ValidationRecord
	assert.False(t, missing.IsFreshAt(now, window))
}
