package applescript

import (
	"regexp"
	"strings"
)

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// Sanitize flattens a script onto one line for `osascript -e`. Each run of
// CR/LF characters becomes a single space and the result is trimmed.
// Indentation and quotes are left untouched.
func Sanitize(script string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(script, " "))
}
