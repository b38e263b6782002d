package domain

// Tier is the confidence classification derived from the number of matched
// identity signals.
type Tier string

const (
	// TierNone means no signal matched; it is never announced.
	TierNone Tier = "NONE"
	// TierLow means one signal matched.
	TierLow Tier = "LOW"
	// TierMedium means two signals matched.
	TierMedium Tier = "MEDIUM"
	// TierHigh means name, email and phone all matched.
	TierHigh Tier = "HIGH"
)

// TierFor maps a matched-signal count to a Tier.
func TierFor(flags int) Tier {
	switch {
	case flags >= 3:
		return TierHigh
	case flags == 2:
		return TierMedium
	case flags == 1:
		return TierLow
	default:
		return TierNone
	}
}

// Rank orders tiers so that callers can keep the best one seen.
func (t Tier) Rank() int {
	switch t {
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// MatchSource records which form of a contact field produced a match.
type MatchSource string

const (
	SourcePublic     MatchSource = "public"
	SourceObfuscated MatchSource = "obfuscated"
)

// Evidence is the per-signal outcome of scoring one candidate.
type Evidence struct {
	NameMatched  bool        `json:"name_matched"`
	EmailMatched bool        `json:"email_matched"`
	PhoneMatched bool        `json:"phone_matched"`
	EmailSource  MatchSource `json:"email_source,omitempty"`
	PhoneSource  MatchSource `json:"phone_source,omitempty"`
}

// Flags returns how many signals matched.
func (e Evidence) Flags() int {
	n := 0
	for _, b := range []bool{e.NameMatched, e.EmailMatched, e.PhoneMatched} {
		if b {
			n++
		}
	}

	return n
}

// ContactDetails merges the public contact fields of a profile with the
// obfuscated ones from the lookup endpoint.
type ContactDetails struct {
	PublicEmail     string `json:"public_email,omitempty"`
	PublicPhone     string `json:"public_phone,omitempty"`
	ObfuscatedEmail string `json:"obfuscated_email,omitempty"`
	ObfuscatedPhone string `json:"obfuscated_phone,omitempty"`
}

// IsEmpty reports whether no contact field is known.
func (d ContactDetails) IsEmpty() bool {
	return d == ContactDetails{}
}

// CorrelationResult is the outcome for a single candidate. It is built once,
// handed to the output sink and dropped.
type CorrelationResult struct {
	Profile

	MatchScore int             `json:"match_score"`
	MatchLevel Tier            `json:"match_level"`
	Evidence   Evidence        `json:"evidence"`
	Details    *ContactDetails `json:"details,omitempty"`
	StopSearch bool            `json:"-"`
}
