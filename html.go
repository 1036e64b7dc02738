package assertdiff

import (
	"regexp"
	"strings"
)

var (
	htmlControlWS = regexp.MustCompile(`[\t\n\r]`)
	htmlSpaceRuns = regexp.MustCompile(`\s{2,}`)
)

// NormalizeHTML flattens the whitespace of an HTML fragment so markup that
// only differs in indentation compares equal: tabs & newlines are dropped,
// runs of whitespace collapse to one space, a single space between two tags
// is removed and the result is trimmed
func NormalizeHTML(s string) string {
	s = htmlControlWS.ReplaceAllString(s, "")
	s = htmlSpaceRuns.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "> <", "><")
	return strings.TrimSpace(s)
}
