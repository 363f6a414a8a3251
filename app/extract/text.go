package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]{2,}`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
	blankLineRe  = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// StripHTML returns the plain text of an HTML fragment with script,
// style and noscript content removed. Invalid markup degrades to
// whatever goquery can salvage rather than failing.
func StripHTML(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()
	return doc.Text()
}

// CleanText collapses whitespace runs: three or more newlines become a
// single blank separator, space runs a single space. Extraction output
// is only judged against the word minimum after this pass.
func CleanText(text string) string {
	text = blankLineRe.ReplaceAllString(text, "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
