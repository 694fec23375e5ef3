package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	got := DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
	assert.Equal(t, []string{"foo", "bar"}, got)
	assert.Empty(t, DedupeAndTrim(nil))
}

func TestDedupeAndTrimUpper(t *testing.T) {
	got := DedupeAndTrimUpper([]string{" nl ", "DE", "Nl", "", "el"})
	assert.Equal(t, []string{"NL", "DE", "EL"}, got)
}
