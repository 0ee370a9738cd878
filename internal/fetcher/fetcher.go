package fetcher

import (
	"context"
	"time"
)

// Response is one fetched page.
type Response struct {
	// URL is the requested URL after scheme defaulting.
	URL         string
	Body        []byte
	StatusCode  int
	ContentType string
	Elapsed     time.Duration
}

// Fetcher defines the interface for downloading a single page.
type Fetcher interface {
	// Fetch performs one GET and returns the response body and timing.
	Fetch(ctx context.Context, url string) (*Response, error)
}
