package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pagegrep/internal/config"
)

var cfg *config.Config

var (
	flagFile          string
	flagCaseSensitive bool
	flagRegex         bool
	flagContext       int
	flagTimeout       int
	flagExport        string
	flagUserAgent     string
	flagMaxDisplay    int
	flagNoColor       bool
)

var rootCmd = &cobra.Command{
	Use:   "pagegrep [url] [search-term]",
	Short: "Search web pages for text",
	Long: "Fetches one or more web pages, extracts their visible text, and searches it " +
		"for a literal string or regex pattern, reporting match locations with context.",
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	RunE: runSearch,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// addSearchFlags registers the search flag surface on cmd. Flag defaults are
// placeholders; buildRunConfig starts from config values and only applies
// flags the user actually set.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagFile, "file", "f", "", "file containing URLs, one per line")
	cmd.Flags().BoolVar(&flagCaseSensitive, "case-sensitive", false, "case-sensitive search")
	cmd.Flags().BoolVar(&flagRegex, "regex", false, "treat the search term as a regex pattern")
	cmd.Flags().IntVar(&flagContext, "context", 100, "context characters around each match")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 10, "request timeout in seconds")
	cmd.Flags().StringVar(&flagExport, "export", "", "export results to a JSON file")
	cmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "custom User-Agent header")
	cmd.Flags().IntVar(&flagMaxDisplay, "max-display", 5, "matches to display per URL")
	cmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	addSearchFlags(rootCmd)
}
