package correlate_test

import (
	"idresolve/internal/correlate"
	"idresolve/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

var target = domain.Identity{Name: "Jane Doe", Email: "jane.doe@example.com", Phone: "555 1234"}

func TestBuild_MediumTier(t *testing.T) {
	profile := domain.Profile{
		Username:          "jane.doe",
		UserID:            1,
		FullName:          "Jane Doe",
		PublicEmail:       "jdoe@example.org",
		PublicPhoneNumber: "555 9934",
	}

	res := correlate.Build(target, profile, domain.ContactHint{})
	require.True(t, res.Evidence.NameMatched)
	require.False(t, res.Evidence.EmailMatched)
	require.True(t, res.Evidence.PhoneMatched)
	require.Equal(t, domain.SourcePublic, res.Evidence.PhoneSource)
	require.Equal(t, 2, res.MatchScore)
	require.Equal(t, domain.TierMedium, res.MatchLevel)
	require.False(t, res.StopSearch)
}

func TestBuild_RedactedLocalPartStillMatches(t *testing.T) {
	// jdoe and jane.doe share domain, first char and last char.
	profile := domain.Profile{FullName: "Jane Doe", PublicEmail: "jdoe@example.com", PublicPhoneNumber: "555 9934"}

	res := correlate.Build(target, profile, domain.ContactHint{})
	require.True(t, res.Evidence.EmailMatched)
	require.Equal(t, domain.TierHigh, res.MatchLevel)
	require.True(t, res.StopSearch)
}

func TestBuild_HighTier(t *testing.T) {
	profile := domain.Profile{
		FullName:          "jane doe",
		PublicEmail:       "jane.doe@example.com",
		PublicPhoneNumber: "555 1234",
	}

	res := correlate.Build(target, profile, domain.ContactHint{})
	require.Equal(t, 3, res.MatchScore)
	require.Equal(t, domain.TierHigh, res.MatchLevel)
	require.True(t, res.StopSearch)
}

func TestBuild_ObfuscatedSignals(t *testing.T) {
	profile := domain.Profile{FullName: "Someone Else"}
	hint := domain.ContactHint{ObfuscatedEmail: "j******e@example.com", ObfuscatedPhone: "555 ***34"}

	res := correlate.Build(target, profile, hint)
	require.False(t, res.Evidence.NameMatched)
	require.True(t, res.Evidence.EmailMatched)
	require.Equal(t, domain.SourceObfuscated, res.Evidence.EmailSource)
	require.True(t, res.Evidence.PhoneMatched)
	require.Equal(t, domain.SourceObfuscated, res.Evidence.PhoneSource)
	require.Equal(t, domain.TierMedium, res.MatchLevel)
	require.NotNil(t, res.Details)
	require.Equal(t, "j******e@example.com", res.Details.ObfuscatedEmail)
}

func TestBuild_PublicWinsOverObfuscated(t *testing.T) {
	profile := domain.Profile{PublicEmail: "jane.doe@example.com"}
	hint := domain.ContactHint{ObfuscatedEmail: "j***e@example.com"}

	res := correlate.Build(target, profile, hint)
	require.True(t, res.Evidence.EmailMatched)
	require.Equal(t, domain.SourcePublic, res.Evidence.EmailSource)
	require.Equal(t, domain.TierLow, res.MatchLevel)
}

func TestBuild_NoSignals(t *testing.T) {
	res := correlate.Build(target, domain.Profile{FullName: "Other"}, domain.ContactHint{})
	require.Equal(t, 0, res.MatchScore)
	require.Equal(t, domain.TierNone, res.MatchLevel)
	require.False(t, res.StopSearch)
	require.Nil(t, res.Details)
}

func TestBuild_TierMonotonic(t *testing.T) {
	full := domain.Profile{FullName: "Jane Doe", PublicEmail: "jane.doe@example.com", PublicPhoneNumber: "555 1234"}
	want := map[int]domain.Tier{0: domain.TierNone, 1: domain.TierLow, 2: domain.TierMedium, 3: domain.TierHigh}

	for mask := range 8 {
		p := domain.Profile{}
		if mask&1 != 0 {
			p.FullName = full.FullName
		}
		if mask&2 != 0 {
			p.PublicEmail = full.PublicEmail
		}
		if mask&4 != 0 {
			p.PublicPhoneNumber = full.PublicPhoneNumber
		}

		res := correlate.Build(target, p, domain.ContactHint{})
		flags := res.Evidence.Flags()
		require.Equal(t, want[flags], res.MatchLevel, "mask %b", mask)
		require.Equal(t, flags == 3, res.StopSearch, "mask %b", mask)
	}
}
