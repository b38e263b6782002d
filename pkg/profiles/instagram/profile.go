package instagram

import (
	"context"
	"encoding/json"
	"idresolve/pkg/domain"
	"idresolve/pkg/logger"
	"idresolve/pkg/serrors"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// pageIDPrefix precedes the numeric user id in logging_page_id.
const pageIDPrefix = "profilePage_"

// Profile resolves handle in two gated steps: the profile page probe yields
// the internal page id, then the user info endpoint yields the full record.
// Transport failures, non-2xx statuses and missing fields all mean "absent"
// and return (nil, nil). Only a user payload lacking its username or id is
// reported as ErrMalformed.
func (c *Client) Profile(ctx context.Context, handle string) (*domain.Profile, error) {
	ctx = logger.WithFields(ctx, zap.String("handle", handle))

	userID, ok, err := c.resolveUserID(ctx, handle)
	if err != nil || !ok {
		return nil, err
	}

	return c.userInfo(ctx, userID)
}

// resolveUserID probes the profile page. ok is false when the handle does not
// resolve to an account. err is only set when ctx ends while waiting on the gate.
func (c *Client) resolveUserID(ctx context.Context, handle string) (string, bool, error) {
	if err := c.opts.Gate.Acquire(ctx); err != nil {
		return "", false, err //nolint: wrapcheck
	}

	pageURL := c.opts.WebBaseURL + "/" + url.PathEscape(handle) + "/?__a=1"
	status, body, err := c.get(ctx, endpointPage, pageURL, true)
	if err != nil {
		logger.Warn(ctx, "profile page request failed", zap.Error(err))

		return "", false, nil
	}
	if !isSuccess(status) {
		logger.Warn(ctx, "profile page request rejected", zap.Error(statusError(status, body)))

		return "", false, nil
	}

	pageID, found := loggingPageID(body)
	if !found {
		logger.Debug(ctx, "handle does not resolve to an account page")

		return "", false, nil
	}

	id := strings.TrimPrefix(pageID, pageIDPrefix)
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		logger.Debug(ctx, "page id is not numeric", zap.String("pageID", pageID))

		return "", false, nil
	}

	return id, true, nil
}

// loggingPageID extracts the top-level "logging_page_id" string from a page
// probe response.
func loggingPageID(body []byte) (string, bool) {
	var (
		id    string
		found bool
	)
	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return "", false
	}
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "logging_page_id" || d.Next() != jx.String {
			return d.Skip()
		}
		s, err := d.Str()
		if err != nil {
			return err //nolint: wrapcheck
		}
		id, found = s, s != ""

		return nil
	})
	if err != nil {
		return "", false
	}

	return id, found
}

// userInfo fetches /users/<id>/info/.
func (c *Client) userInfo(ctx context.Context, userID string) (*domain.Profile, error) {
	if err := c.opts.Gate.Acquire(ctx); err != nil {
		return nil, err //nolint: wrapcheck
	}

	status, body, err := c.get(ctx, endpointUserInfo, c.opts.APIBaseURL+"/users/"+userID+"/info/", true)
	if err != nil {
		logger.Warn(ctx, "user info request failed", zap.String("userID", userID), zap.Error(err))

		return nil, nil
	}
	if !isSuccess(status) {
		logger.Warn(ctx, "user info request rejected", zap.String("userID", userID), zap.Error(statusError(status, body)))

		return nil, nil
	}

	var envelope struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Warn(ctx, "user info response is not json", zap.Error(err))

		return nil, nil
	}
	if len(envelope.User) == 0 || string(envelope.User) == "null" {
		logger.Debug(ctx, "user info response has no user payload")

		return nil, nil
	}

	return decodeUser(envelope.User)
}

// userPayload mirrors the fields of the user info response the resolver uses.
// Everything except username and the numeric id is optional.
type userPayload struct {
	Username          string   `json:"username"`
	PK                flexUint `json:"pk"`
	UserID            flexUint `json:"user_id"`
	FullName          string   `json:"full_name"`
	IsPrivate         bool     `json:"is_private"`
	IsVerified        bool     `json:"is_verified"`
	FollowerCount     uint64   `json:"follower_count"`
	FollowingCount    uint64   `json:"following_count"`
	MediaCount        uint64   `json:"media_count"`
	ExternalURL       string   `json:"external_url"`
	Biography         string   `json:"biography"`
	PublicEmail       string   `json:"public_email"`
	PublicPhoneNumber string   `json:"public_phone_number"`
	HDProfilePic      struct {
		URL string `json:"url"`
	} `json:"hd_profile_pic_url_info"`
	ProfilePicURL string `json:"profile_pic_url"`
}

func decodeUser(raw []byte) (*domain.Profile, error) {
	var u userPayload
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformed, err, "could not decode user payload")
	}

	id := uint64(u.PK)
	if id == 0 {
		id = uint64(u.UserID)
	}
	if u.Username == "" || id == 0 {
		return nil, serrors.With(serrors.ErrMalformed, "user payload lacks username or id")
	}

	pic := u.HDProfilePic.URL
	if pic == "" {
		pic = u.ProfilePicURL
	}

	return &domain.Profile{
		Username:          u.Username,
		UserID:            id,
		FullName:          u.FullName,
		IsVerified:        u.IsVerified,
		IsPrivate:         u.IsPrivate,
		FollowerCount:     u.FollowerCount,
		FollowingCount:    u.FollowingCount,
		MediaCount:        u.MediaCount,
		Biography:         u.Biography,
		ExternalURL:       u.ExternalURL,
		ProfilePicURL:     pic,
		PublicEmail:       u.PublicEmail,
		PublicPhoneNumber: u.PublicPhoneNumber,
	}, nil
}

// flexUint accepts a JSON number or a numeric string.
type flexUint uint64

func (f *flexUint) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid id %q", s)
	}
	*f = flexUint(n)

	return nil
}
