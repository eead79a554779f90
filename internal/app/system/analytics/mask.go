package analytics

import "strings"

// MaskName hides all but the first and last rune of a display name:
// "Somchai" -> "S***i". Names of one or two runes keep only the first.
func MaskName(name string) string {
	r := []rune(strings.TrimSpace(name))
	switch {
	case len(r) == 0:
		return ""
	case len(r) <= 2:
		return string(r[0]) + "*"
	default:
		return string(r[0]) + "***" + string(r[len(r)-1])
	}
}
