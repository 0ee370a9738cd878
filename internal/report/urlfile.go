package report

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadURLs reads a URL list file: one URL per line, trimmed. Blank lines and
// lines starting with # are skipped.
func LoadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "urlfile: open %s", path)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "urlfile: read %s", path)
	}
	return urls, nil
}
