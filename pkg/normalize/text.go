package normalize

import "strings"

// FallbackBrand labels products whose title yields no usable token.
const FallbackBrand = "기타"

var htmlReplacer = strings.NewReplacer(
	"<b>", "",
	"</b>", "",
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
)

// CleanHTML strips the bold markers and entities the search endpoints
// embed in title and description fields. Empty input stays empty.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlReplacer.Replace(s)
}

// BrandToken derives a brand label from a product title: the content
// of the first bracketed run when non-blank, else the first
// whitespace-delimited token, else the fallback label.
func BrandToken(title string) string {
	if open := strings.Index(title, "["); open >= 0 {
		rest := title[open+1:]
		if end := strings.Index(rest, "]"); end >= 0 {
			if inner := strings.TrimSpace(rest[:end]); inner != "" {
				return inner
			}
		}
	}
	if fields := strings.Fields(title); len(fields) > 0 {
		return fields[0]
	}
	return FallbackBrand
}
