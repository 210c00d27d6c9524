package stats

import (
	"strings"
	"unicode/utf8"
)

// WordFrequency counts whitespace-delimited tokens across titles,
// skipping single-character tokens and tokens equal to an active
// search keyword, and returns the n most frequent.
func WordFrequency(titles []string, keywords []string, n int) []Count {
	skip := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		skip[strings.TrimSpace(kw)] = struct{}{}
	}

	var tokens []string
	for _, title := range titles {
		for _, tok := range strings.Fields(title) {
			if utf8.RuneCountInString(tok) <= 1 {
				continue
			}
			if _, excluded := skip[tok]; excluded {
				continue
			}
			tokens = append(tokens, tok)
		}
	}
	return TopN(tokens, n)
}
