// Package keys builds cache keys for derived dashboard views.
package keys

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/mohammed-shakir/pt-dashboard/internal/filter"
)

const prefix = "ptdash:v1"

// Key identifies the view of one dataset version under one selection. The
// readable part is truncated; the xxhash suffix covers the full selection.
func Key(fingerprint string, c filter.Criteria) string {
	sel := c.Normalize().Key()
	safe := sanitizeForKey(collapseASCIIWhitespace(sel))

	const maxSelectionLen = 160
	if len(safe) > maxSelectionLen {
		safe = safe[:maxSelectionLen]
	}

	sum := xxhash.Sum64String(sel)
	return fmt.Sprintf("%s:%s:sel=%s:f=%016x", prefix, sanitizeForKey(strings.TrimSpace(fingerprint)), safe, sum)
}

func sanitizeForKey(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	for _, r := range s {
		out := rune(0)
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			out = '_'
		case isAlphaNum(r) || r == '_' || r == '-' || r == '=':
			out = r
		default:
			// '&', ':' and any non-ASCII rune
			out = '-'
		}
		if (out == '_' || out == '-') && out == prev {
			continue
		}
		b.WriteRune(out)
		prev = out
	}
	return b.String()
}

// converts any run of ASCII whitespace to a single space.
func collapseASCIIWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	wasWS := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			if !wasWS {
				b.WriteByte(' ')
				wasWS = true
			}
			continue
		}
		b.WriteRune(r)
		wasWS = false
	}
	return strings.TrimSpace(b.String())
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r <= unicode.MaxASCII && unicode.IsDigit(r))
}
