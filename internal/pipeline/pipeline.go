// Package pipeline drives fetch, extract, and search for each URL in turn.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/pagegrep/internal/extract"
	"github.com/sells-group/pagegrep/internal/fetcher"
	"github.com/sells-group/pagegrep/internal/model"
	"github.com/sells-group/pagegrep/internal/report"
	"github.com/sells-group/pagegrep/internal/search"
)

// Pipeline runs the fetch → extract → search workflow over a URL list.
// URLs are processed sequentially, in input order; a failed URL is recorded
// and the batch continues.
type Pipeline struct {
	fetcher fetcher.Fetcher
	matcher *search.Matcher
	out     report.Formatter
	term    string
}

// New creates a Pipeline. The matcher must already be compiled, so pattern
// errors surface before the first network call.
func New(f fetcher.Fetcher, m *search.Matcher, out report.Formatter, term string) *Pipeline {
	return &Pipeline{fetcher: f, matcher: m, out: out, term: term}
}

// Run processes every URL and returns the aggregated summary. The summary's
// totals are maintained per URL: Successful counts results with Success set,
// TotalMatches sums their match counts.
func (p *Pipeline) Run(ctx context.Context, urls []string) model.RunSummary {
	sum := model.RunSummary{
		RunID:      uuid.NewString(),
		TotalURLs:  len(urls),
		SearchTerm: p.term,
		Timestamp:  time.Now().Format("2006-01-02 15:04:05"),
	}

	for i, u := range urls {
		p.out.Progress(i+1, len(urls), fetcher.NormalizeURL(u))
		res := p.searchURL(ctx, u)
		p.out.Result(res)

		if res.Success {
			sum.Successful++
			sum.TotalMatches += res.TotalMatches
		}
		sum.Results = append(sum.Results, res)
	}

	return sum
}

// searchURL runs the per-URL state machine: fetched or fetch-failed, then
// extracted, matched, recorded. SearchTime covers the whole of it.
func (p *Pipeline) searchURL(ctx context.Context, rawURL string) model.URLResult {
	start := time.Now()
	res := model.URLResult{
		URL:        fetcher.NormalizeURL(rawURL),
		SearchTerm: p.term,
		Matches:    []model.Match{},
	}

	resp, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		zap.L().Warn("pipeline: fetch failed",
			zap.String("url", res.URL),
			zap.Error(err),
		)
		res.ErrorMessage = err.Error()
		res.SearchTime = time.Since(start).Seconds()
		return res
	}

	page, err := extract.FromHTML(resp.Body, resp.ContentType)
	if err != nil {
		zap.L().Warn("pipeline: extract failed",
			zap.String("url", res.URL),
			zap.Error(err),
		)
		res.ErrorMessage = err.Error()
		res.SearchTime = time.Since(start).Seconds()
		return res
	}

	res.PageTitle = page.Title
	res.Matches = p.matcher.Search(page.Text)
	res.TotalMatches = len(res.Matches)
	res.Success = true
	res.SearchTime = time.Since(start).Seconds()
	return res
}
