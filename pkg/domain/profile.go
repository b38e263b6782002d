package domain

// Profile is a fully resolved account on the target platform. Optional fields
// that the platform omits are left at their zero value; an empty PublicEmail
// or PublicPhoneNumber means the account shows none.
type Profile struct {
	Username          string `json:"username"`
	UserID            uint64 `json:"user_id"`
	FullName          string `json:"full_name"`
	IsVerified        bool   `json:"is_verified"`
	IsPrivate         bool   `json:"is_private"`
	FollowerCount     uint64 `json:"followers"`
	FollowingCount    uint64 `json:"following"`
	MediaCount        uint64 `json:"posts"`
	Biography         string `json:"bio"`
	ExternalURL       string `json:"external_url"`
	ProfilePicURL     string `json:"profile_pic"`
	PublicEmail       string `json:"-"`
	PublicPhoneNumber string `json:"-"`
}

// ContactHint holds the redacted contact data returned by the account lookup
// endpoint, e.g. "j***e@example.com" or "+1 ***-***-**34". Either field may be
// empty.
type ContactHint struct {
	ObfuscatedEmail string `json:"obfuscated_email"`
	ObfuscatedPhone string `json:"obfuscated_phone"`
}

// IsEmpty reports whether the hint carries no data at all.
func (h ContactHint) IsEmpty() bool {
	return h.ObfuscatedEmail == "" && h.ObfuscatedPhone == ""
}
