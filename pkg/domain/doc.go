// Package domain contains the entities shared by the resolver: the target
// identity, resolved profiles, contact hints and the per-candidate correlation
// result. These types are free of transport concerns.
package domain
