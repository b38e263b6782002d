package correlate

import "idresolve/pkg/domain"

// Score compares profile and hint against target. Each signal is set when it
// matches in either its public or its obfuscated form.
func Score(target domain.Identity, profile domain.Profile, hint domain.ContactHint) domain.Evidence {
	var ev domain.Evidence

	ev.NameMatched = NameMatch(profile.FullName, target.Name)

	switch {
	case EmailPartialMatch(profile.PublicEmail, target.Email):
		ev.EmailMatched, ev.EmailSource = true, domain.SourcePublic
	case EmailPartialMatch(hint.ObfuscatedEmail, target.Email):
		ev.EmailMatched, ev.EmailSource = true, domain.SourceObfuscated
	}

	switch {
	case PhonePartialMatch(profile.PublicPhoneNumber, target.Phone):
		ev.PhoneMatched, ev.PhoneSource = true, domain.SourcePublic
	case PhonePartialMatch(hint.ObfuscatedPhone, target.Phone):
		ev.PhoneMatched, ev.PhoneSource = true, domain.SourceObfuscated
	}

	return ev
}

// Build scores a candidate and assembles the result handed to the output sink.
func Build(target domain.Identity, profile domain.Profile, hint domain.ContactHint) domain.CorrelationResult {
	ev := Score(target, profile, hint)
	flags := ev.Flags()

	res := domain.CorrelationResult{
		Profile:    profile,
		MatchScore: flags,
		MatchLevel: domain.TierFor(flags),
		Evidence:   ev,
		StopSearch: flags == 3,
	}

	details := domain.ContactDetails{
		PublicEmail:     profile.PublicEmail,
		PublicPhone:     profile.PublicPhoneNumber,
		ObfuscatedEmail: hint.ObfuscatedEmail,
		ObfuscatedPhone: hint.ObfuscatedPhone,
	}
	if !details.IsEmpty() {
		res.Details = &details
	}

	return res
}
