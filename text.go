package ingest

import "strings"

// NormalizeSpace collapses every run of whitespace into a single space and
// trims the result.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
