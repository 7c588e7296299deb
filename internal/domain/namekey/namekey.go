// Package namekey canonicalizes display names into match keys used to join
// person records across independently maintained sources.
package namekey

import "strings"

// Normalize converts a display name to its match key: surrounding whitespace
// trimmed, case folded to upper. The empty result means "unmatchable" and
// callers must skip the row rather than resolve it.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
