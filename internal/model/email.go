package model

import "strings"

// LooksLikeEmail applies the minimal syntactic sanity check used across
// the product: non-empty after trimming, with both "@" and ".". It is
// deliberately not a full address-grammar validation.
func LooksLikeEmail(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && strings.Contains(s, "@") && strings.Contains(s, ".")
}
