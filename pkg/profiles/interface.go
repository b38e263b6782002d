// Package profiles defines the abstraction over the social platform the
// resolver verifies candidates against.
package profiles

import (
	"context"
	"idresolve/pkg/domain"
)

// Client resolves handles to profiles and fetches redacted contact hints.
//
//go:generate mockgen -package mockprofiles -source=interface.go -destination=mock/mockprofiles.go *
type Client interface {
	// ValidateSession checks that the configured session credential is
	// accepted. Any error is fatal for the run.
	ValidateSession(ctx context.Context) error
	// Profile resolves handle to a full profile. It returns (nil, nil) when
	// the handle does not resolve to a real account or the platform could
	// not be reached.
	Profile(ctx context.Context, handle string) (*domain.Profile, error)
	// Lookup returns the obfuscated contact data the platform discloses for
	// handle. On a non-retryable failure it returns an empty hint and an
	// error that callers may treat as "no hint".
	Lookup(ctx context.Context, handle string) (domain.ContactHint, error)
}
