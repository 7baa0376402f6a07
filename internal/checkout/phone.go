package checkout

import "strings"

// FormatPhone normalizes a phone value into the canonical international form
// "+234 XXX XXX XXXX". Non-digit characters are stripped first; a leading
// zero or bare subscriber number is rebased onto the +234 country code. The
// transformation is idempotent: formatting an already-formatted number
// returns the identical string.
func FormatPhone(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	rest := digits.String()
	switch {
	case rest == "":
		return ""
	case strings.HasPrefix(rest, "234"):
		rest = rest[3:]
	case strings.HasPrefix(rest, "0"):
		rest = rest[1:]
	}
	if len(rest) > 10 {
		rest = rest[:10]
	}

	groups := []string{"+234"}
	for _, width := range []int{3, 3, 4} {
		if rest == "" {
			break
		}
		if width > len(rest) {
			width = len(rest)
		}
		groups = append(groups, rest[:width])
		rest = rest[width:]
	}
	return strings.Join(groups, " ")
}
