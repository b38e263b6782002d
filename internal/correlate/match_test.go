package correlate_test

import (
	"idresolve/internal/correlate"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailPartialMatch(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		target    string
		want      bool
	}{
		{"exact", "jane.doe@example.com", "jane.doe@example.com", true},
		{"redacted", "j******e@example.com", "jane.doe@example.com", true},
		{"short redaction", "j*e@example.com", "jane.doe@example.com", true},
		{"different domain", "jdoe@example.com", "jane.doe@example.org", false},
		{"domain is case sensitive", "jane.doe@Example.com", "jane.doe@example.com", false},
		{"different first", "x******e@example.com", "jane.doe@example.com", false},
		{"different last", "j******x@example.com", "jane.doe@example.com", false},
		{"no at", "jane.doe.example.com", "jane.doe@example.com", false},
		{"two ats", "j@ne@example.com", "jane.doe@example.com", false},
		{"empty candidate", "", "jane.doe@example.com", false},
		{"empty target", "jane.doe@example.com", "", false},
		{"empty local", "@example.com", "jane.doe@example.com", false},
		{"single char local", "j@example.com", "j@example.com", true},
		{"multibyte local", "é***ü@example.com", "éloïse.ü@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, correlate.EmailPartialMatch(tt.candidate, tt.target))
		})
	}
}

func TestEmailPartialMatch_Properties(t *testing.T) {
	locals := []string{"a", "ab", "a*b", "abb", "b", "ba", "jane.doe", "j***e", "jdoe", "", "x@y"}
	domains := []string{"example.com", "example.org", "mail.example.com", ""}

	var emails []string
	for _, l := range locals {
		for _, d := range domains {
			emails = append(emails, l+"@"+d)
		}
	}
	emails = append(emails, "", "no-at-sign")

	for _, a := range emails {
		for _, b := range emails {
			ab := correlate.EmailPartialMatch(a, b)
			require.Equal(t, ab, correlate.EmailPartialMatch(b, a), "symmetry for %q, %q", a, b)

			aLocal, aDomain, aOK := cut(a)
			bLocal, bDomain, bOK := cut(b)
			if !aOK || !bOK {
				continue
			}
			if aDomain != bDomain {
				require.False(t, ab, "differing domains must not match: %q, %q", a, b)

				continue
			}
			if aLocal[0] == bLocal[0] && aLocal[len(aLocal)-1] == bLocal[len(bLocal)-1] {
				require.True(t, ab, "same domain and first/last char must match: %q, %q", a, b)
			}
		}
	}
}

// cut splits a well-formed ASCII email with a non-empty local part.
func cut(s string) (string, string, bool) {
	at := -1
	for i := range len(s) {
		if s[i] == '@' {
			if at >= 0 {
				return "", "", false
			}
			at = i
		}
	}
	if at <= 0 {
		return "", "", false
	}

	return s[:at], s[at+1:], true
}

func TestPhonePartialMatch(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		target    string
		want      bool
	}{
		{"same prefix and suffix", "555 9934", "555 1234", true},
		{"identical", "555 1234", "555 1234", true},
		{"redacted", "+1 ***-***-**34", "+1 555-123-1234", true},
		{"different suffix", "555 9935", "555 1234", false},
		{"different prefix", "556 9934", "555 1234", false},
		{"target without space", "5551234 9934", "5551234", true},
		{"no spaces, same", "5551234", "5551234", true},
		{"no spaces, different middle", "5559934", "5551234", false},
		{"last two from whole string", "+1 12 34", "+1 99", false},
		{"empty candidate", "", "555 1234", false},
		{"empty target", "555 1234", "", false},
		{"blank candidate", "   ", "555 1234", false},
		{"short strings", "12", "12", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, correlate.PhonePartialMatch(tt.candidate, tt.target))
		})
	}
}

func TestPhonePartialMatch_EmptyNeverMatches(t *testing.T) {
	for _, other := range []string{"", " ", "555", "555 1234", "+1 ***-***-**34"} {
		require.False(t, correlate.PhonePartialMatch("", other))
		require.False(t, correlate.PhonePartialMatch(other, ""))
	}
}

func TestNameMatch(t *testing.T) {
	require.True(t, correlate.NameMatch("Jane Doe", "jane doe"))
	require.True(t, correlate.NameMatch("JANE DOE", "Jane Doe"))
	require.False(t, correlate.NameMatch("Jane  Doe", "Jane Doe"))
	require.False(t, correlate.NameMatch("Jane", "Jane Doe"))
}
