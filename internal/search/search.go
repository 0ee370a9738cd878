// Package search finds literal or regex matches in extracted page text.
package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pagegrep/internal/model"
)

// Options configures a Matcher.
type Options struct {
	Term          string
	CaseSensitive bool
	Regex         bool
	ContextChars  int
}

// Matcher scans text for a compiled search term. Matches are non-overlapping;
// a match is attributed to the line containing its start offset.
type Matcher struct {
	opts Options
	re   *regexp.Regexp
}

// New validates the options and compiles the pattern once. An invalid regex
// is a configuration error: it fails here, before any URL is fetched.
// Literal terms are quoted and compiled too, so case folding happens inside
// the regexp engine and every reported offset indexes the original text.
func New(opts Options) (*Matcher, error) {
	if opts.Term == "" {
		return nil, eris.New("search: empty search term")
	}
	if opts.ContextChars < 0 {
		return nil, eris.Errorf("search: negative context size %d", opts.ContextChars)
	}

	expr := opts.Term
	if !opts.Regex {
		expr = regexp.QuoteMeta(expr)
	}
	if !opts.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, eris.Wrapf(err, "search: invalid pattern %q", opts.Term)
	}
	return &Matcher{opts: opts, re: re}, nil
}

// Search returns every non-overlapping match in text, ordered by position.
func (m *Matcher) Search(text string) []model.Match {
	spans := m.re.FindAllStringIndex(text, -1)
	matches := make([]model.Match, 0, len(spans))
	for _, sp := range spans {
		matches = append(matches, m.record(text, sp[0], sp[1]))
	}
	return matches
}

// record builds a Match for the span [start, end), with the context window
// clamped to the text bounds and snapped to rune boundaries so the context
// strings stay valid UTF-8. MatchText keeps the document's casing.
func (m *Matcher) record(text string, start, end int) model.Match {
	before := start - m.opts.ContextChars
	if before < 0 {
		before = 0
	}
	for before < start && !utf8.RuneStart(text[before]) {
		before++
	}
	after := end + m.opts.ContextChars
	if after > len(text) {
		after = len(text)
	}
	for after > end && after < len(text) && !utf8.RuneStart(text[after]) {
		after--
	}

	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := strings.IndexByte(text[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text)
	} else {
		lineEnd += start
	}

	return model.Match{
		MatchText:     text[start:end],
		LineNumber:    strings.Count(text[:start], "\n") + 1,
		Position:      start,
		ContextBefore: text[before:start],
		ContextAfter:  text[end:after],
		FullLine:      text[lineStart:lineEnd],
	}
}
