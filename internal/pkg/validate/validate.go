// Package validate holds small checks shared outside the HTTP layer,
// where the DTO validator does not apply (the moderator bot reads free
// text from chat).
package validate

import "strings"

// Required reports whether the value has any content besides whitespace.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
