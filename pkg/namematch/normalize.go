// Package namematch resolves raw instructor name strings to professor
// records despite inconsistent formatting across the two source systems.
package namematch

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// Trailing generational/academic suffixes, optionally period-terminated.
	trailingSuffix = regexp.MustCompile(`\s+(jr|sr|ii|iii|iv|v|esq|phd|md)\.?$`)
	suffixToken    = regexp.MustCompile(`^(jr|sr|ii|iii|iv|v|esq|phd|md)$`)
)

// Normalize canonicalizes a raw name for comparison: lowercase, single
// internal spaces, no surrounding whitespace, no trailing suffix token,
// no periods. Empty input yields an empty string.
func Normalize(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = trailingSuffix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, ".", "")
}

// Parsed is a name split into components. All fields are normalized
// (lowercase, no periods); absent components are empty strings.
type Parsed struct {
	First  string
	Middle string
	Last   string
	Suffix string
}

// ParseName splits a raw name into components by token count: one token
// is a bare first name, two are first/last, three or more put the
// remainder in Middle. A final suffix token shifts the last name left.
func ParseName(raw string) Parsed {
	parts := strings.Fields(Normalize(raw))
	switch len(parts) {
	case 0:
		return Parsed{}
	case 1:
		return Parsed{First: parts[0]}
	case 2:
		return Parsed{First: parts[0], Last: parts[1]}
	}

	p := Parsed{
		First:  parts[0],
		Last:   parts[len(parts)-1],
		Middle: strings.Join(parts[1:len(parts)-1], " "),
	}
	if suffixToken.MatchString(p.Last) {
		p.Suffix = p.Last
		p.Last = parts[len(parts)-2]
		p.Middle = ""
		if len(parts) > 3 {
			p.Middle = strings.Join(parts[1:len(parts)-2], " ")
		}
	}
	return p
}
