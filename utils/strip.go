package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an HTML fragment to its text content. CMS backends return
// descriptions as HTML blobs of wildly varying quality; anything that fails to
// parse is returned trimmed but otherwise untouched.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
