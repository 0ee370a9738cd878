package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/pagegrep/internal/fetcher"
	"github.com/sells-group/pagegrep/internal/report"
	"github.com/sells-group/pagegrep/internal/search"
)

func newMatcher(t *testing.T, opts search.Options) *search.Matcher {
	t.Helper()
	m, err := search.New(opts)
	require.NoError(t, err)
	return m
}

func htmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_SingleURL(t *testing.T) {
	srv := htmlServer(t, `<html><head><title>Widgets</title></head>
<body><p>widget one</p><p>widget two</p></body></html>`)

	var buf bytes.Buffer
	p := New(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
		newMatcher(t, search.Options{Term: "widget", ContextChars: 20}),
		report.NewPlain(&buf, 5),
		"widget",
	)

	sum := p.Run(context.Background(), []string{srv.URL})
	assert.Equal(t, 1, sum.TotalURLs)
	assert.Equal(t, 1, sum.Successful)
	assert.Equal(t, 2, sum.TotalMatches)
	assert.NotEmpty(t, sum.RunID)
	assert.NotEmpty(t, sum.Timestamp)

	require.Len(t, sum.Results, 1)
	res := sum.Results[0]
	assert.True(t, res.Success)
	assert.Equal(t, "Widgets", res.PageTitle)
	assert.Equal(t, 2, res.TotalMatches)
	assert.Greater(t, res.SearchTime, 0.0)
}

func TestRun_FailureDoesNotAbortBatch(t *testing.T) {
	good := htmlServer(t, `<html><body>match here</body></html>`)
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(bad.Close)

	var buf bytes.Buffer
	p := New(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
		newMatcher(t, search.Options{Term: "match", ContextChars: 10}),
		report.NewPlain(&buf, 5),
		"match",
	)

	sum := p.Run(context.Background(), []string{bad.URL, good.URL})
	assert.Equal(t, 2, sum.TotalURLs)
	assert.Equal(t, 1, sum.Successful)
	assert.Equal(t, 1, sum.TotalMatches)

	// Input order is preserved.
	require.Len(t, sum.Results, 2)
	assert.False(t, sum.Results[0].Success)
	assert.NotEmpty(t, sum.Results[0].ErrorMessage)
	assert.True(t, sum.Results[1].Success)

	// Batch progress is one line per URL.
	assert.Contains(t, buf.String(), "[1/2] Searching")
	assert.Contains(t, buf.String(), "[2/2] Searching")
}

func TestRun_TimeoutIsolated(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)
	good := htmlServer(t, `<html><body>still works</body></html>`)

	var buf bytes.Buffer
	p := New(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{Timeout: 50 * time.Millisecond}),
		newMatcher(t, search.Options{Term: "works", ContextChars: 10}),
		report.NewPlain(&buf, 5),
		"works",
	)

	sum := p.Run(context.Background(), []string{slow.URL, good.URL})
	require.Len(t, sum.Results, 2)
	assert.False(t, sum.Results[0].Success)
	assert.NotEmpty(t, sum.Results[0].ErrorMessage)
	assert.True(t, sum.Results[1].Success)
	assert.Equal(t, 1, sum.TotalMatches)
}

func TestRun_TotalsInvariant(t *testing.T) {
	a := htmlServer(t, `<html><body>xx xx xx</body></html>`)
	b := htmlServer(t, `<html><body>xx</body></html>`)

	var buf bytes.Buffer
	p := New(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}),
		newMatcher(t, search.Options{Term: "xx", ContextChars: 5}),
		report.NewPlain(&buf, 5),
		"xx",
	)

	sum := p.Run(context.Background(), []string{a.URL, b.URL})
	want := 0
	for _, res := range sum.Results {
		if res.Success {
			want += len(res.Matches)
		}
	}
	assert.Equal(t, want, sum.TotalMatches)
	assert.LessOrEqual(t, sum.Successful, sum.TotalURLs)
}
