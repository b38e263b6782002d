package candidates

import (
	"context"
	"idresolve/pkg/logger"
	"idresolve/pkg/serrors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

const (
	// DefaultSearchURL is the search page queried by Dumpor; the name is appended.
	DefaultSearchURL = "https://dumpor.com/search?query="

	profileLinkClass = "profile-name-link"
	maxPageBytes     = 8 << 20
)

// Dumpor scrapes a public profile search page. Every anchor carrying the
// profile-name-link class contributes its first text node as a candidate.
type Dumpor struct {
	httpClient *http.Client
	searchURL  string
	userAgent  string
}

// NewDumpor builds a Dumpor source. An empty searchURL selects DefaultSearchURL.
func NewDumpor(httpClient *http.Client, searchURL, userAgent string) *Dumpor {
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}

	return &Dumpor{httpClient: httpClient, searchURL: searchURL, userAgent: userAgent}
}

var _ Source = (*Dumpor)(nil)

// Search fetches the result page for name and returns the handles in
// document order.
func (d *Dumpor) Search(ctx context.Context, name string) ([]string, error) {
	u := d.searchURL + strings.ReplaceAll(strings.TrimSpace(name), " ", "+")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not create search request")
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "candidate search failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrUnavailable, "candidate search returned status %d", resp.StatusCode)
	}

	handles, err := ParseProfileLinks(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "candidate search finished", zap.Int("candidates", len(handles)))

	return handles, nil
}

// ParseProfileLinks extracts the first text of every a.profile-name-link
// element in r.
func ParseProfileLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse search page")
	}

	var out []string
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || n.Data != "a" || !hasClass(n, profileLinkClass) {
			continue
		}
		if text, ok := firstText(n); ok {
			out = append(out, text)
		}
	}

	return out, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
			return true
		}
	}

	return false
}

// firstText returns the first non-blank text node below n.
func firstText(n *html.Node) (string, bool) {
	for c := range n.Descendants() {
		if c.Type != html.TextNode {
			continue
		}
		if s := strings.TrimSpace(c.Data); s != "" {
			return s, true
		}
	}

	return "", false
}
