package instagram

import (
	"context"
	"encoding/json"
	"idresolve/pkg/domain"
	"idresolve/pkg/logger"
	"idresolve/pkg/serrors"
	"idresolve/pkg/signer"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// LookupPayload builds the fixed-shape account lookup payload for query.
func LookupPayload(query, versionTag string) signer.Payload {
	return signer.Payload{
		"login_attempt_count": "0",
		"directly_sign_in":    "true",
		"source":              "default",
		"q":                   query,
		"ig_sig_key_version":  versionTag,
	}
}

// Lookup posts a signed account lookup for handle and returns whatever
// obfuscated contact data the response carries. Throttled (429) responses are
// retried according to the Backoff policy; exhausting it returns
// ErrRateLimited. Any other response is parsed leniently: a body that does
// not decode yields an empty hint and no error.
func (c *Client) Lookup(ctx context.Context, handle string) (domain.ContactHint, error) {
	ctx = logger.WithFields(ctx, zap.String("handle", handle))

	if c.opts.Signer == nil {
		return domain.ContactHint{}, serrors.With(serrors.ErrConfig, "lookup signer is not configured")
	}
	body, err := c.opts.Signer.Sign(LookupPayload(handle, c.opts.Signer.Version()))
	if err != nil {
		return domain.ContactHint{}, err //nolint: wrapcheck
	}

	m := newRetryMachine(c.opts.Backoff)
	for {
		status, respBody, err := c.postLookup(ctx, body)
		if err != nil {
			return domain.ContactHint{}, err
		}

		if status != http.StatusTooManyRequests {
			m.answered()

			return parseContactHint(respBody), nil
		}

		wait, ok := m.throttled()
		if !ok {
			return domain.ContactHint{}, serrors.With(serrors.ErrRateLimited,
				"lookup still rate limited after %d retries", m.retries())
		}

		c.opts.Metrics.IncLookupRetry()
		logger.Warn(ctx, "lookup rate limited, backing off",
			zap.Int("retry", m.retries()),
			zap.Duration("wait", wait))

		if err := c.opts.Clock.Sleep(ctx, wait); err != nil {
			return domain.ContactHint{}, errors.Wrap(err, "lookup backoff interrupted")
		}
	}
}

func (c *Client) postLookup(ctx context.Context, body string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.opts.APIBaseURL+"/users/lookup/", strings.NewReader(body))
	if err != nil {
		return 0, nil, errors.Wrap(err, "could not create lookup request")
	}
	req.Header.Set("User-Agent", c.opts.LookupUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	status, b, err := c.do(ctx, endpointLookup, req)
	if err != nil {
		return 0, nil, serrors.Wrap(serrors.ErrUnavailable, err, "lookup request failed")
	}

	return status, b, nil
}

// parseContactHint decodes a lookup response. The schema is not guaranteed,
// so anything unexpected results in an empty hint.
func parseContactHint(body []byte) domain.ContactHint {
	var hint struct {
		ObfuscatedEmail *string `json:"obfuscated_email"`
		ObfuscatedPhone *string `json:"obfuscated_phone"`
	}
	if err := json.Unmarshal(body, &hint); err != nil {
		return domain.ContactHint{}
	}

	var out domain.ContactHint
	if hint.ObfuscatedEmail != nil {
		out.ObfuscatedEmail = *hint.ObfuscatedEmail
	}
	if hint.ObfuscatedPhone != nil {
		out.ObfuscatedPhone = *hint.ObfuscatedPhone
	}

	return out
}
