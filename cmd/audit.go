package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagelens/pagelens/internal/analyzer"
	"github.com/pagelens/pagelens/internal/auditor"
	"github.com/pagelens/pagelens/internal/engine"
	"github.com/pagelens/pagelens/internal/fetcher"
)

// auditCmd runs a one-shot audit against a URL and prints the result as JSON
var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "audit a single page and print the result as json",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := auditOnce(cmd.Context(), args[0])
		cobra.CheckErr(err)
	},
}

// init registers the audit command and its flags on the root command
func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().Duration("timeout", fetcher.DefaultTimeout, "fetch timeout")
	auditCmd.Flags().String("user-agent", fetcher.DefaultUserAgent, "user agent for the page fetch")
}

// auditResult is the CLI output shape for a one-shot audit
type auditResult struct {
	URL      string             `json:"url"`
	Score    int                `json:"score"`
	Checks   []auditor.Check    `json:"checks"`
	Analysis *analyzer.Analysis `json:"analysis"`
}

// auditOnce fetches, analyzes and audits a single page and writes the
// result to stdout
func auditOnce(ctx context.Context, url string) error {
	timeout := k.Duration("timeout")
	if timeout <= 0 {
		timeout = fetcher.DefaultTimeout
	}

	f := fetcher.New(
		fetcher.WithTimeout(timeout),
		fetcher.WithUserAgent(k.String("user-agent")),
	)

	eng := engine.New(f, analyzer.DefaultConfig())

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	analysis, audit, err := eng.Audit(fetchCtx, url)
	if err != nil {
		return fmt.Errorf("auditing %s: %w", url, err)
	}

	out := auditResult{
		URL:      analysis.URL,
		Score:    audit.Score,
		Checks:   audit.Checks,
		Analysis: analysis,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
