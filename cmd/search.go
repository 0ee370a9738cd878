package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pagegrep/internal/fetcher"
	"github.com/sells-group/pagegrep/internal/pipeline"
	"github.com/sells-group/pagegrep/internal/report"
	"github.com/sells-group/pagegrep/internal/search"
)

// runConfig is the fully resolved input for one run, whether it came from
// flags, config, or the interactive prompt.
type runConfig struct {
	URLs       []string
	Search     search.Options
	Fetch      fetcher.HTTPOptions
	Export     string
	MaxDisplay int
	NoColor    bool
}

func runSearch(cmd *cobra.Command, args []string) error {
	rc, err := buildRunConfig(cmd, args)
	if err != nil {
		return err
	}

	// Compile the pattern before any fetch; a bad regex fails the run here.
	matcher, err := search.New(rc.Search)
	if err != nil {
		return err
	}

	out := report.New(cmd.OutOrStdout(), report.UseColor(rc.NoColor), rc.MaxDisplay)
	p := pipeline.New(fetcher.NewHTTPFetcher(rc.Fetch), matcher, out, rc.Search.Term)

	sum := p.Run(cmd.Context(), rc.URLs)
	out.Summary(sum)

	if rc.Export != "" {
		if err := report.WriteJSON(rc.Export, sum); err != nil {
			return err
		}
		zap.L().Info("export written",
			zap.String("path", rc.Export),
			zap.Int("results", len(sum.Results)),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "\nResults exported to %s\n", rc.Export)
	}

	// Per-URL failures never fail the process; only config-level errors do.
	return nil
}

// buildRunConfig resolves the run configuration: config file and env first,
// then any flag the user set, then positional args. When neither a URL nor a
// file was supplied it falls back to the interactive prompt, which fills the
// same struct.
func buildRunConfig(cmd *cobra.Command, args []string) (*runConfig, error) {
	rc := &runConfig{
		Search: search.Options{
			CaseSensitive: cfg.Search.CaseSensitive,
			Regex:         cfg.Search.Regex,
			ContextChars:  cfg.Search.ContextChars,
		},
		Fetch: fetcher.HTTPOptions{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		},
		MaxDisplay: cfg.Search.MaxDisplay,
	}

	flags := cmd.Flags()
	if flags.Changed("case-sensitive") {
		rc.Search.CaseSensitive = flagCaseSensitive
	}
	if flags.Changed("regex") {
		rc.Search.Regex = flagRegex
	}
	if flags.Changed("context") {
		rc.Search.ContextChars = flagContext
	}
	if flags.Changed("timeout") {
		rc.Fetch.Timeout = time.Duration(flagTimeout) * time.Second
	}
	if flags.Changed("user-agent") {
		rc.Fetch.UserAgent = flagUserAgent
	}
	if flags.Changed("max-display") {
		rc.MaxDisplay = flagMaxDisplay
	}
	rc.Export = flagExport
	rc.NoColor = flagNoColor

	var urlArg string
	file := flagFile
	if file != "" {
		// With a URL file the only positional is the search term.
		if len(args) > 1 {
			return nil, eris.New("with --file, pass only the search term")
		}
		if len(args) == 1 {
			rc.Search.Term = args[0]
		}
	} else {
		if len(args) > 0 {
			urlArg = args[0]
		}
		if len(args) > 1 {
			rc.Search.Term = args[1]
		}
	}

	if urlArg == "" && file == "" {
		ans := promptSearch(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
		urlArg, file = ans.url, ans.file
		if rc.Search.Term == "" {
			rc.Search.Term = ans.term
		}
		rc.Search.CaseSensitive = ans.caseSensitive
		rc.Search.Regex = ans.regex
	}

	if rc.Search.Term == "" {
		return nil, eris.New("search term is required")
	}

	switch {
	case file != "":
		urls, err := report.LoadURLs(file)
		if err != nil {
			return nil, err
		}
		if len(urls) == 0 {
			return nil, eris.Errorf("no URLs found in %s", file)
		}
		rc.URLs = urls
	case urlArg != "":
		rc.URLs = []string{urlArg}
	default:
		return nil, eris.New("a URL or a URL file is required")
	}

	return rc, nil
}
