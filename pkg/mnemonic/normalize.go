package mnemonic

import "strings"

// NormalizeWords splits human input into lowercase words. Commas count as
// separators; surrounding whitespace is ignored.
func NormalizeWords(s string) []string {
	s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ",", " ")))
	return strings.Fields(s)
}
