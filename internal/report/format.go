// Package report renders run summaries for humans and exports them as JSON.
package report

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/sells-group/pagegrep/internal/model"
)

// maxContextDisplay caps how many characters of context a single match line
// may occupy in the rendered summary.
const maxContextDisplay = 200

// Formatter renders progress and results. Implementations differ only in
// styling; selection happens once at startup, never mid-run.
type Formatter interface {
	// Progress announces that URL index (1-based) of total is being searched.
	Progress(index, total int, url string)
	// Result reports the outcome for one URL as soon as it is known.
	Result(res model.URLResult)
	// Summary renders the full run summary after all URLs are processed.
	Summary(sum model.RunSummary)
}

// UseColor decides whether colorized output is appropriate for stdout.
func UseColor(noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New returns a color formatter when colored is true, plain otherwise.
func New(w io.Writer, colored bool, maxDisplay int) Formatter {
	if colored {
		return NewColor(w, maxDisplay)
	}
	return NewPlain(w, maxDisplay)
}

type sprintFunc func(a ...interface{}) string

// palette holds the style hooks a formatter renders with.
type palette struct {
	header    sprintFunc
	url       sprintFunc
	good      sprintFunc
	bad       sprintFunc
	highlight sprintFunc
}

type base struct {
	w          io.Writer
	maxDisplay int
	pal        palette
}

// Plain renders without ANSI codes; matches are bracketed as [match].
type Plain struct{ base }

// NewPlain creates a Formatter that writes unstyled text to w.
func NewPlain(w io.Writer, maxDisplay int) *Plain {
	passthrough := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &Plain{base{
		w:          w,
		maxDisplay: maxDisplay,
		pal: palette{
			header:    passthrough,
			url:       passthrough,
			good:      passthrough,
			bad:       passthrough,
			highlight: func(a ...interface{}) string { return "[" + fmt.Sprint(a...) + "]" },
		},
	}}
}

// Color renders with ANSI colors; matches are highlighted black-on-yellow.
type Color struct{ base }

// NewColor creates a Formatter that writes colorized text to w.
func NewColor(w io.Writer, maxDisplay int) *Color {
	return &Color{base{
		w:          w,
		maxDisplay: maxDisplay,
		pal: palette{
			header:    color.New(color.FgCyan, color.Bold).SprintFunc(),
			url:       color.New(color.FgBlue, color.Underline).SprintFunc(),
			good:      color.New(color.FgGreen).SprintFunc(),
			bad:       color.New(color.FgRed).SprintFunc(),
			highlight: color.New(color.BgYellow, color.FgBlack).SprintFunc(),
		},
	}}
}

func (b *base) Progress(index, total int, url string) {
	if total > 1 {
		fmt.Fprintf(b.w, "[%d/%d] Searching %s\n", index, total, url)
		return
	}
	fmt.Fprintf(b.w, "Searching %s\n", url)
}

func (b *base) Result(res model.URLResult) {
	if !res.Success {
		fmt.Fprintf(b.w, "  %s\n", b.pal.bad("error: "+res.ErrorMessage))
		return
	}
	fmt.Fprintf(b.w, "  %s\n", b.pal.good(fmt.Sprintf("found %d matches in %.2fs", res.TotalMatches, res.SearchTime)))
}

func (b *base) Summary(sum model.RunSummary) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(b.w, "\n%s\n%s\n%s\n", rule, b.pal.header("SEARCH RESULTS SUMMARY"), rule)
	fmt.Fprintf(b.w, "Total URLs searched: %d\n", sum.TotalURLs)
	fmt.Fprintf(b.w, "Successful searches: %d\n", sum.Successful)
	fmt.Fprintf(b.w, "Total matches found: %d\n", sum.TotalMatches)
	fmt.Fprintf(b.w, "Search term: %q\n", sum.SearchTerm)

	for _, res := range sum.Results {
		fmt.Fprintf(b.w, "\n%s\n", b.pal.url(res.URL))
		if !res.Success {
			fmt.Fprintf(b.w, "  %s\n", b.pal.bad("Error: "+res.ErrorMessage))
			continue
		}
		fmt.Fprintf(b.w, "  Title: %s\n", res.PageTitle)
		fmt.Fprintf(b.w, "  Matches: %d | Time: %.2fs\n", res.TotalMatches, res.SearchTime)

		shown := res.Matches
		if len(shown) > b.maxDisplay {
			shown = shown[:b.maxDisplay]
		}
		for i, match := range shown {
			fmt.Fprintf(b.w, "  [%d] line %d, position %d\n", i+1, match.LineNumber, match.Position)
			fmt.Fprintf(b.w, "      %s\n", b.contextLine(match))
		}
		if hidden := len(res.Matches) - len(shown); hidden > 0 {
			fmt.Fprintf(b.w, "  ... and %d more matches\n", hidden)
		}
	}
}

// contextLine flattens a match's context onto one line with the match
// highlighted. The window is clipped so the line stays readable; the
// highlighted match itself is never cut.
func (b *base) contextLine(match model.Match) string {
	before := flatten(match.ContextBefore)
	after := flatten(match.ContextAfter)

	budget := maxContextDisplay - len(match.MatchText)
	if budget < 0 {
		budget = 0
	}
	half := budget / 2
	if len(before) > half {
		before = "..." + before[len(before)-half:]
	}
	if len(after) > half {
		after = after[:half] + "..."
	}

	return before + b.pal.highlight(match.MatchText) + after
}

var spaceRe = regexp.MustCompile(`\s+`)

// flatten collapses all whitespace runs, newlines included, to single spaces.
func flatten(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}
