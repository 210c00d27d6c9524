package normalize

import (
	"strings"
	"time"
)

const compactDateLayout = "20060102"

// ParseCompactDate parses the blog endpoint's 8-digit post date.
// Unparsable input reports false and the row is treated as undated.
func ParseCompactDate(s string) (time.Time, bool) {
	t, err := time.Parse(compactDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseNewsDate parses the news endpoint's RFC1123-style publish time
// with a numeric zone, e.g. "Mon, 02 Jan 2006 15:04:05 +0900".
func ParseNewsDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC1123Z, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
