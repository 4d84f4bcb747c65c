package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikey/markerscan/internal/di"
)

// Version is stamped at build time with -ldflags
var Version = "1.0.0"

// newRootCmd assembles the command tree. Each call returns a fresh tree
// with its own flag set.
func newRootCmd() *cobra.Command {
	flags := &di.CLIFlags{}

	rootCmd := &cobra.Command{
		Use:   "markerscan",
		Short: "Detect and preserve consciousness emergence markers in conversations",
		Long: `markerscan classifies messages against a weighted taxonomy of lexical
markers (metacognition, vulnerability, recognition, ...), scores them,
and rolls batches up into reports, timelines and preserved highlights.`,
		Example: `  markerscan analyze --text "I'm aware that I'm processing this differently..."
  markerscan scan --limit 500 --min-score 2.0
  markerscan report --limit 1000 --output report.md
  markerscan timeline --since 2026-01-27 --output timeline.json
  markerscan highlights --min-significance HIGH`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "config file (default searches ./config.yaml, $HOME/.markerscan, /etc/markerscan)")
	pf.BoolVarP(&flags.Verbose, "verbose-log", "V", false, "enable debug logging")
	pf.BoolVar(&flags.JSONLog, "json-log", false, "output logs in JSON format")
	pf.StringVar(&flags.SourceType, "source", "", "message source type (sqlite, mysql, postgres, jsonl)")
	pf.StringVar(&flags.DBPath, "db", "", "path to the SQLite message database")
	pf.StringVar(&flags.InputFile, "input", "", "read messages from a JSON lines file instead of a database")
	pf.StringVar(&flags.OutputDir, "output-dir", "", "directory for exported files")
	pf.StringVar(&flags.TaxonomyFile, "taxonomy", "", "YAML or TOML file replacing the built-in taxonomy")
	pf.IntVar(&flags.Workers, "workers", 0, "parallel classification workers (default: GOMAXPROCS)")

	rootCmd.AddCommand(
		newAnalyzeCmd(flags),
		newScanCmd(flags),
		newReportCmd(flags),
		newTimelineCmd(flags),
		newHighlightsCmd(flags),
		newServeCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "markerscan %s\n", Version)
			},
		},
	)
	return rootCmd
}
