// Package instagram provides a profiles.Client backed by the Instagram web
// and private mobile APIs.
//
// Calls against the primary profile API (session check, page probe, user
// info) pass through a shared ratelimit.Gate and carry the session cookie.
// The account lookup endpoint is called without the gate and without the
// cookie; it has its own retry policy (see Backoff).
package instagram

import (
	"context"
	"fmt"
	"idresolve/pkg/clock"
	"idresolve/pkg/logger"
	"idresolve/pkg/metrics"
	"idresolve/pkg/profiles"
	"idresolve/pkg/ratelimit"
	"idresolve/pkg/serrors"
	"idresolve/pkg/signer"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const (
	// DefaultWebBaseURL is the web surface used for the session check and page probe.
	DefaultWebBaseURL = "https://www.instagram.com"
	// DefaultAPIBaseURL is the private API used for user info and account lookup.
	DefaultAPIBaseURL = "https://i.instagram.com/api/v1"

	maxBodyBytes = 4 << 20
)

// Endpoint labels used for logging and metrics.
const (
	endpointSession  = "session"
	endpointPage     = "page"
	endpointUserInfo = "user_info"
	endpointLookup   = "lookup"
)

// Options configures a Client.
type Options struct {
	// WebBaseURL is the web surface, without a trailing slash.
	WebBaseURL string
	// APIBaseURL is the private API root, without a trailing slash.
	APIBaseURL string
	// WebUserAgent is sent on primary API calls.
	WebUserAgent string
	// LookupUserAgent is sent on account lookup calls.
	LookupUserAgent string
	// SessionID is the value of the sessionid cookie.
	SessionID string
	// Signer signs account lookup bodies. Required.
	Signer *signer.Signer
	// Gate throttles primary API calls. A 1/s gate is created when nil.
	Gate *ratelimit.Gate
	// Backoff is the retry policy for throttled lookups. Zero means DefaultBackoff.
	Backoff Backoff
	// Clock drives backoff sleeps. Defaults to the wall clock.
	Clock clock.Clock
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Client talks to Instagram and fulfills the profiles.Client interface. It is
// safe for concurrent use.
type Client struct {
	httpClient *http.Client
	opts       Options
}

// Ensure Client conforms to the profiles.Client interface at compile time.
var _ profiles.Client = (*Client)(nil)

// New constructs a Client using httpClient for all requests.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.WebBaseURL == "" {
		opts.WebBaseURL = DefaultWebBaseURL
	}
	if opts.APIBaseURL == "" {
		opts.APIBaseURL = DefaultAPIBaseURL
	}
	opts.WebBaseURL = strings.TrimRight(opts.WebBaseURL, "/")
	opts.APIBaseURL = strings.TrimRight(opts.APIBaseURL, "/")
	if opts.Gate == nil {
		opts.Gate = ratelimit.New(ratelimit.DefaultPerSecond)
	}
	if opts.Backoff == (Backoff{}) {
		opts.Backoff = DefaultBackoff
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}

	return &Client{httpClient: httpClient, opts: opts}
}

// ValidateSession performs a lightweight authenticated call and fails with
// ErrUnauthorized unless it succeeds.
func (c *Client) ValidateSession(ctx context.Context) error {
	if c.opts.SessionID == "" {
		return serrors.With(serrors.ErrUnauthorized, "session id is empty")
	}
	if err := c.opts.Gate.Acquire(ctx); err != nil {
		return err //nolint: wrapcheck
	}

	status, _, err := c.get(ctx, endpointSession, c.opts.WebBaseURL+"/accounts/current_user/?__a=1", true)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnauthorized, err, "session validation failed")
	}
	if !isSuccess(status) {
		return serrors.With(serrors.ErrUnauthorized, "session validation failed with status %d, check credentials", status)
	}

	logger.Debug(ctx, "session validated")

	return nil
}

// get issues a GET against the primary API.
func (c *Client) get(ctx context.Context, endpoint, url string, withSession bool) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, errors.Wrap(err, "could not create request")
	}
	req.Header.Set("User-Agent", c.opts.WebUserAgent)
	if withSession {
		req.Header.Set("Cookie", "sessionid="+c.opts.SessionID)
	}

	return c.do(ctx, endpoint, req)
}

// do sends req and returns the status code and the (size-capped) body.
func (c *Client) do(ctx context.Context, endpoint string, req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.opts.Metrics.ObserveRequest(endpoint, 0, time.Since(start))

		return 0, nil, errors.Wrap(err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.opts.Metrics.ObserveRequest(endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "could not read response body")
	}

	logger.Debug(ctx, "request finished",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(b)))

	return resp.StatusCode, b, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func statusError(status int, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}

	return fmt.Errorf("unexpected status %d: %s", status, snippet)
}
