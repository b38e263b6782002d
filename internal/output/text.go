package output

import (
	"context"
	"fmt"
	"idresolve/internal/correlate"
	"idresolve/pkg/domain"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	checkMark = "✓"
	ruleWidth = 30
)

const banner = `
  _    _                    _
 (_)__| |_ _ ___ ___ ___ __| |_ _____
 | / _` + "`" + ` | '_/ -_|_-</ _ \ \ V / -_)
 |_\__,_|_| \___/__/\___/_|\_/\___|
`

// Text renders a labeled report per candidate and announces the match tier.
type Text struct {
	w        io.Writer
	colorize bool
}

// NewText returns a Text sink writing to w. Colors are used only when
// colorize is set.
func NewText(w io.Writer, colorize bool) *Text {
	return &Text{w: w, colorize: colorize}
}

// Banner prints the tool banner.
func (t *Text) Banner() {
	_, _ = fmt.Fprintln(t.w, t.paint(banner, text.FgHiCyan))
}

// NoCandidates reports an empty search.
func (t *Text) NoCandidates(_ context.Context, name string) {
	_, _ = fmt.Fprintf(t.w, "%s No candidates found for %q.\n", t.paint("[!]", text.FgRed), name)
}

// Emit prints res and stops the search on a HIGH match.
func (t *Text) Emit(_ context.Context, res domain.CorrelationResult, target domain.Identity) (bool, error) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateHeader = false

	add := func(matched bool, label, value string) {
		mark := ""
		if matched {
			mark = t.paint("[+]", text.FgGreen)
			value += " " + checkMark
		}
		tw.AppendRow(table.Row{mark, label, ":", value})
	}

	add(correlate.NameMatch(res.FullName, target.Name), "Full Name", res.FullName)
	add(false, "User ID", strconv.FormatUint(res.UserID, 10))
	add(false, "Verified", strconv.FormatBool(res.IsVerified))
	add(false, "Is private Account", strconv.FormatBool(res.IsPrivate))
	add(false, "Followers", strconv.FormatUint(res.FollowerCount, 10))
	add(false, "Following", strconv.FormatUint(res.FollowingCount, 10))
	add(false, "Number of posts", strconv.FormatUint(res.MediaCount, 10))
	add(false, "External URL", res.ExternalURL)
	add(false, "Biography", oneLine(res.Biography))

	if d := res.Details; d != nil {
		if d.PublicEmail != "" {
			add(correlate.EmailPartialMatch(d.PublicEmail, target.Email), "Public email", d.PublicEmail)
		}
		if d.PublicPhone != "" {
			add(correlate.PhonePartialMatch(d.PublicPhone, target.Phone), "Public phone number", d.PublicPhone)
		}
		if d.ObfuscatedEmail != "" {
			add(correlate.EmailPartialMatch(d.ObfuscatedEmail, target.Email), "Obfuscated email", d.ObfuscatedEmail)
		}
		if d.ObfuscatedPhone != "" {
			add(correlate.PhonePartialMatch(d.ObfuscatedPhone, target.Phone), "Obfuscated phone", d.ObfuscatedPhone)
		}
	}

	add(false, "Profile Picture", res.ProfilePicURL)

	var b strings.Builder
	fmt.Fprintf(&b, "Information about %s\n", res.Username)
	b.WriteString(tw.Render())
	b.WriteByte('\n')

	if res.MatchLevel != domain.TierNone {
		fmt.Fprintf(&b, "%s Profile ID %d match level: %s\n",
			t.paint("[*]", text.FgCyan), res.UserID, t.tier(res.MatchLevel))
	}
	b.WriteString(strings.Repeat("-", ruleWidth))
	b.WriteByte('\n')

	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return false, fmt.Errorf("could not write result: %w", err)
	}

	return res.StopSearch, nil
}

func (t *Text) tier(tier domain.Tier) string {
	switch tier {
	case domain.TierHigh:
		return t.paint(string(tier), text.FgGreen, text.Bold)
	case domain.TierMedium:
		return t.paint(string(tier), text.FgYellow)
	default:
		return t.paint(string(tier), text.FgRed)
	}
}

func (t *Text) paint(s string, colors ...text.Color) string {
	if !t.colorize {
		return s
	}

	return text.Colors(colors).Sprint(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
