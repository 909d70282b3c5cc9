package text_preprocessor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the visible text of an HTML fragment. Block elements are
// separated by a space. Input that fails to parse is returned unchanged.
func StripHTML(htmlContent string) string {
	if !strings.ContainsRune(htmlContent, '<') {
		return htmlContent
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}
	doc.Find("head, script, style, noscript, meta, link, iframe").Remove()
	doc.Find("p, div, br, li, tr, td, th, blockquote, h1, h2, h3, h4, h5, h6").AppendHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}
