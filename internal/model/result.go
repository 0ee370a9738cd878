package model

// Match is one occurrence of the search term in a page's extracted text.
// Position is a 0-based byte offset into the text; LineNumber is 1-based and
// refers to the line containing the start of the match.
type Match struct {
	MatchText     string `json:"match_text"`
	LineNumber    int    `json:"line_number"`
	Position      int    `json:"position"`
	ContextBefore string `json:"context_before"`
	ContextAfter  string `json:"context_after"`
	FullLine      string `json:"full_line"`
}

// URLResult holds the outcome of searching a single URL. Failed fetches set
// Success=false and ErrorMessage; Matches stays empty.
type URLResult struct {
	URL          string  `json:"url"`
	SearchTerm   string  `json:"search_term"`
	Success      bool    `json:"success"`
	ErrorMessage string  `json:"error_message,omitempty"`
	PageTitle    string  `json:"page_title"`
	SearchTime   float64 `json:"search_time"`
	TotalMatches int     `json:"total_matches"`
	Matches      []Match `json:"matches"`
}

// RunSummary aggregates all URL results for one invocation.
type RunSummary struct {
	RunID        string      `json:"run_id"`
	TotalURLs    int         `json:"total_urls"`
	Successful   int         `json:"successful_searches"`
	TotalMatches int         `json:"total_matches"`
	SearchTerm   string      `json:"search_term"`
	Timestamp    string      `json:"timestamp"`
	Results      []URLResult `json:"results"`
}

// ExportSummary is the header block of the JSON export.
type ExportSummary struct {
	RunID              string `json:"run_id"`
	TotalURLs          int    `json:"total_urls"`
	SuccessfulSearches int    `json:"successful_searches"`
	TotalMatches       int    `json:"total_matches"`
	SearchTerm         string `json:"search_term"`
	Timestamp          string `json:"timestamp"`
}

// ExportDocument is the on-disk layout of a JSON export.
type ExportDocument struct {
	SearchSummary ExportSummary `json:"search_summary"`
	Results       []URLResult   `json:"results"`
}

// ExportDoc converts a RunSummary into the export layout.
func (s RunSummary) ExportDoc() ExportDocument {
	return ExportDocument{
		SearchSummary: ExportSummary{
			RunID:              s.RunID,
			TotalURLs:          s.TotalURLs,
			SuccessfulSearches: s.Successful,
			TotalMatches:       s.TotalMatches,
			SearchTerm:         s.SearchTerm,
			Timestamp:          s.Timestamp,
		},
		Results: s.Results,
	}
}
