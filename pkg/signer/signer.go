// Package signer builds the signed request bodies expected by the account
// lookup endpoint. The remote side recomputes the HMAC over the exact JSON
// text, so the encoding here must stay byte-stable.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"idresolve/pkg/serrors"
	"net/url"
	"slices"
	"strings"

	"github.com/go-faster/jx"
)

// Payload is a flat set of string fields. It is always serialized with keys
// in lexicographic order and without insignificant whitespace.
type Payload map[string]string

// Canonical returns the canonical JSON encoding of p.
func Canonical(p Payload) []byte {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var e jx.Encoder
	e.ObjStart()
	for _, k := range keys {
		e.FieldStart(k)
		e.Str(p[k])
	}
	e.ObjEnd()

	return e.Bytes()
}

// Digest returns the lowercase hex HMAC-SHA256 of data keyed with secret.
func Digest(data []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)

	return hex.EncodeToString(mac.Sum(nil))
}

// Escape percent-encodes every byte outside the RFC 3986 unreserved set.
// Spaces become %20, not '+'.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Sign serializes payload, signs it with secret and returns the form body
//
//	ig_sig_key_version=<versionTag>&signed_body=<hexDigest>.<urlEncodedJSON>
//
// An empty secret or version tag is a configuration error.
func Sign(payload Payload, secret, versionTag string) (string, error) {
	if secret == "" {
		return "", serrors.With(serrors.ErrConfig, "signing key is empty")
	}
	if versionTag == "" {
		return "", serrors.With(serrors.ErrConfig, "signing key version is empty")
	}

	data := Canonical(payload)

	var b strings.Builder
	b.WriteString("ig_sig_key_version=")
	b.WriteString(versionTag)
	b.WriteString("&signed_body=")
	b.WriteString(Digest(data, secret))
	b.WriteByte('.')
	b.WriteString(Escape(string(data)))

	return b.String(), nil
}

// Signer binds a key and its version tag.
type Signer struct {
	secret  string
	version string
}

// New validates the key material and returns a Signer.
func New(secret, versionTag string) (*Signer, error) {
	if _, err := Sign(Payload{}, secret, versionTag); err != nil {
		return nil, err
	}

	return &Signer{secret: secret, version: versionTag}, nil
}

// Version returns the key version tag.
func (s *Signer) Version() string { return s.version }

// Sign signs payload with the bound key.
func (s *Signer) Sign(payload Payload) (string, error) {
	return Sign(payload, s.secret, s.version)
}
