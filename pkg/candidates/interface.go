// Package candidates produces the ordered list of handles that might belong
// to a target identity.
package candidates

import "context"

// Source returns candidate handles for a display name, best guesses first.
// Handles may still carry a leading "@" marker.
//
//go:generate mockgen -package mockcandidates -source=interface.go -destination=mock/mockcandidates.go *
type Source interface {
	Search(ctx context.Context, name string) ([]string, error)
}

// Static is a Source that always returns the same handles. It lets callers
// skip the search when they already know which accounts to check.
type Static []string

// Search returns a copy of s.
func (s Static) Search(_ context.Context, _ string) ([]string, error) {
	return append([]string(nil), s...), nil
}

var _ Source = Static(nil)
