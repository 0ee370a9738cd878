// Package extract converts fetched HTML into searchable plaintext.
package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html/charset"
)

// Page holds the text view of a fetched document.
type Page struct {
	Title string
	Text  string
}

// FromHTML parses raw HTML and returns its visible text plus the page title.
// Script, style, noscript, and meta subtrees are dropped; each remaining line
// is trimmed and blank lines removed. The parser recovers from malformed
// markup, so broken pages yield best-effort text rather than an error.
// contentType is the Content-Type response header, used for charset decoding.
func FromHTML(body []byte, contentType string) (Page, error) {
	var r io.Reader = bytes.NewReader(body)
	if cr, err := charset.NewReader(r, contentType); err == nil {
		r = cr
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, eris.Wrap(err, "extract: parse html")
	}

	doc.Find("script, style, noscript, meta").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := collapse(doc.Find("body").Text())

	return Page{Title: title, Text: text}, nil
}

// collapse trims every line and drops the blank ones.
func collapse(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
