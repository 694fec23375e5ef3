//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseAddressID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
//
// Justification: Trust boundary functions must handle arbitrary input safely.
func FuzzParseAddressID(f *testing.F) {
	f.Add("")
	f.Add("42")
	f.Add("0")
	f.Add("-1")
	f.Add("9223372036854775808")
	f.Add("'; DROP TABLE addresses;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseAddressID(input)
		if err != nil {
			return
		}
		if id <= 0 {
			t.Errorf("accepted non-positive id %d from %q", id, input)
		}
		roundTrip, err := ParseAddressID(id.String())
		if err != nil {
			t.Errorf("valid ID failed round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed ID value")
		}
	})
}
