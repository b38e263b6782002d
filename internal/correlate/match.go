// Package correlate scores how strongly a resolved profile, together with
// the redacted contact hints for it, corroborates the target identity.
//
// The platform redacts contact data ("j******e@example.com",
// "+1 ***-***-**34"), so email and phone are compared with partial rules
// rather than equality.
package correlate

import (
	"strings"
	"unicode/utf8"
)

// EmailPartialMatch reports whether candidate could be a redacted form of
// target: both must contain exactly one "@", the domains must be identical and
// the local parts must share their first and last character. Empty inputs
// never match. The relation is symmetric.
func EmailPartialMatch(candidate, target string) bool {
	cLocal, cDomain, ok := splitEmail(candidate)
	if !ok {
		return false
	}
	tLocal, tDomain, ok := splitEmail(target)
	if !ok {
		return false
	}
	if cDomain != tDomain {
		return false
	}

	cFirst, _ := utf8.DecodeRuneInString(cLocal)
	tFirst, _ := utf8.DecodeRuneInString(tLocal)
	cLast, _ := utf8.DecodeLastRuneInString(cLocal)
	tLast, _ := utf8.DecodeLastRuneInString(tLocal)

	return cFirst == tFirst && cLast == tLast
}

// splitEmail splits s into a non-empty local part and a domain.
func splitEmail(s string) (local, domain string, ok bool) {
	if strings.Count(s, "@") != 1 {
		return "", "", false
	}
	local, domain, _ = strings.Cut(s, "@")
	if local == "" {
		return "", "", false
	}

	return local, domain, true
}

// PhonePartialMatch compares the first whitespace-delimited token and the last
// two characters of each number. The target falls back to the whole string
// when it holds no token. Empty inputs never match.
//
// The last two characters are taken from the whole string, not from the last
// token.
func PhonePartialMatch(candidate, target string) bool {
	if candidate == "" || target == "" {
		return false
	}

	cFields := strings.Fields(candidate)
	if len(cFields) == 0 {
		return false
	}
	tFirst := target
	if tFields := strings.Fields(target); len(tFields) > 0 {
		tFirst = tFields[0]
	}

	return cFields[0] == tFirst && lastN(candidate, 2) == lastN(target, 2)
}

// lastN returns the last n characters of s, or s itself when shorter.
func lastN(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)

	return string(r[len(r)-n:])
}

// NameMatch is exact equality under case folding.
func NameMatch(candidate, target string) bool {
	return strings.EqualFold(candidate, target)
}
