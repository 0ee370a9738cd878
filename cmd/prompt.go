package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptAnswers struct {
	url           string
	file          string
	term          string
	caseSensitive bool
	regex         bool
}

// promptSearch collects the same inputs the flags would provide. It runs when
// neither a URL argument nor a URL file was given.
func promptSearch(r *bufio.Reader, w io.Writer) promptAnswers {
	fmt.Fprintln(w, "pagegrep interactive mode")
	fmt.Fprintln(w, strings.Repeat("=", 30))

	var ans promptAnswers
	target := promptInput(r, w, "Enter URL (or file path with -f)")
	if rest, ok := strings.CutPrefix(target, "-f "); ok {
		ans.file = strings.TrimSpace(rest)
	} else {
		ans.url = target
	}
	ans.term = promptInput(r, w, "Enter search term")
	ans.caseSensitive = promptYesNo(r, w, "Case-sensitive search?")
	ans.regex = promptYesNo(r, w, "Use regex?")
	return ans
}

func promptInput(r *bufio.Reader, w io.Writer, label string) string {
	fmt.Fprintf(w, "%s: ", label)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptYesNo(r *bufio.Reader, w io.Writer, label string) bool {
	fmt.Fprintf(w, "%s (y/n) [n]: ", label)
	line, _ := r.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
