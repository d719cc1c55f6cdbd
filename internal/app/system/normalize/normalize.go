// Package normalize standardizes user-supplied identity fields before
// they are stored or compared.
package normalize

import "strings"

// Email trims whitespace and lowercases an email address. Comparison
// and uniqueness always go through the folded email_ci field, but we
// also store the address itself in this canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace and collapses interior runs of spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone strips spaces, dashes, dots, and parentheses from a phone
// number, keeping a leading + if present.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '+' && i == 0:
			b.WriteByte(c)
		}
	}
	return b.String()
}
