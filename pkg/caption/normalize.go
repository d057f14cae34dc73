package caption

import "strings"

// CollapseWhitespace replaces each run of whitespace with a single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimCommonPrefixWords returns toTrim without the leading words it shares with base.
//
// Both strings are split on single spaces. "Acme X100" and "Acme Zoom 23mm"
// yield "Zoom 23mm". If every word of toTrim is a prefix of base, the result is empty.
func TrimCommonPrefixWords(base string, toTrim string) string {
	bw := strings.Split(base, " ")
	tw := strings.Split(toTrim, " ")

	for i := 0; i < len(bw) && i < len(tw); i++ {
		if bw[i] != tw[i] {
			return strings.Join(tw[i:], " ")
		}
	}

	if len(tw) <= len(bw) {
		return ""
	}
	return strings.Join(tw[len(bw):], " ")
}
