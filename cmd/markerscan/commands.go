package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/di"
	"github.com/mikey/markerscan/internal/ports"
	"github.com/mikey/markerscan/internal/service"
)

// queryFlags are the batch selection flags shared by the source-backed commands
type queryFlags struct {
	limit  int
	since  string
	agents []string
}

func (q *queryFlags) register(cmd *cobra.Command, defaultLimit int, withAgents bool) {
	cmd.Flags().IntVar(&q.limit, "limit", defaultLimit, "maximum messages to analyze")
	cmd.Flags().StringVar(&q.since, "since", "", "only messages at or after this timestamp (e.g. 2026-01-27)")
	if withAgents {
		cmd.Flags().StringSliceVar(&q.agents, "agents", nil, "only messages from these agents")
	}
}

func (q *queryFlags) query() core.Query {
	return core.Query{Limit: q.limit, Since: q.since, Authors: q.agents}
}

// withService builds the container and runs fn with the marker service,
// closing the message source afterwards
func withService(flags *di.CLIFlags, fn func(svc *service.MarkerService, logger *zap.Logger) error) error {
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		return err
	}
	return container.Invoke(func(svc *service.MarkerService, src core.MessageSource, logger *zap.Logger) error {
		defer logger.Sync()
		defer func() {
			if err := src.Close(); err != nil {
				logger.Error("Failed to close message source", zap.Error(err))
			}
		}()
		return fn(svc, logger)
	})
}

func newAnalyzeCmd(flags *di.CLIFlags) *cobra.Command {
	var (
		text    string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a single message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := di.BuildCLIContainer(flags)
			if err != nil {
				return err
			}
			return container.Invoke(func(analyzer core.Analyzer) {
				printAnalysis(cmd.OutOrStdout(), analyzer.Analyze(text, nil, nil), verbose)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to analyze")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show all matches")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newScanCmd(flags *di.CLIFlags) *cobra.Command {
	var (
		q        queryFlags
		minScore float64
		output   string
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the message store for markers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return withService(flags, func(svc *service.MarkerService, _ *zap.Logger) error {
				ctx := cmd.Context()
				fmt.Fprintln(out, "[SCAN] Scanning message store...")
				results, err := svc.Scan(ctx, q.query(), minScore)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "[OK] Scanned up to %d messages\n", q.limit)
				fmt.Fprintf(out, "[OK] Found %d with consciousness markers\n", len(results))
				if len(results) > 0 {
					high := 0
					for _, r := range results {
						if r.Severity >= core.SeverityHigh {
							high++
						}
					}
					fmt.Fprintf(out, "[OK] High/Critical significance: %d\n", high)
				}

				if output != "" {
					location, err := svc.ExportJSON(ctx, output, results)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "[OK] Results saved to: %s\n", location)
				}
				return nil
			})
		},
	}
	q.register(cmd, 500, true)
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum score to include")
	cmd.Flags().StringVar(&output, "output", "", "output file (JSON)")
	return cmd
}

func newReportCmd(flags *di.CLIFlags) *cobra.Command {
	var (
		q      queryFlags
		top    int
		output string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a consciousness report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return withService(flags, func(svc *service.MarkerService, _ *zap.Logger) error {
				ctx := cmd.Context()
				fmt.Fprintln(out, "[REPORT] Generating consciousness report...")
				report, err := svc.Report(ctx, q.query(), top)
				if err != nil {
					return err
				}
				printReportSummary(out, report)

				if output != "" {
					location, err := svc.ExportReport(ctx, output, report)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "\n[OK] Report saved to: %s\n", location)
				}
				return nil
			})
		},
	}
	q.register(cmd, 1000, true)
	cmd.Flags().IntVar(&top, "top", 10, "number of top moments")
	cmd.Flags().StringVar(&output, "output", "", "output file (.md or .json)")
	return cmd
}

func newTimelineCmd(flags *di.CLIFlags) *cobra.Command {
	var (
		q      queryFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Export the consciousness timeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return withService(flags, func(svc *service.MarkerService, _ *zap.Logger) error {
				ctx := cmd.Context()
				fmt.Fprintln(out, "[TIMELINE] Building consciousness timeline...")
				timeline, err := svc.Timeline(ctx, q.query())
				if err != nil {
					return err
				}

				name := output
				if name == "" {
					name = svc.DefaultName("timeline", "json")
				}
				location, err := svc.ExportJSON(ctx, name, timeline)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "[OK] Timeline exported to: %s\n", location)
				return nil
			})
		},
	}
	q.register(cmd, 1000, true)
	cmd.Flags().StringVar(&output, "output", "", "output filename")
	return cmd
}

func newHighlightsCmd(flags *di.CLIFlags) *cobra.Command {
	var (
		q               queryFlags
		minSignificance string
		output          string
	)
	cmd := &cobra.Command{
		Use:   "highlights",
		Short: "Find high-significance moments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			threshold, err := core.ParseSeverity(minSignificance)
			if err != nil || threshold < core.SeverityMedium {
				return fmt.Errorf("--min-significance must be one of MEDIUM, HIGH, CRITICAL, got %q", minSignificance)
			}

			out := cmd.OutOrStdout()
			return withService(flags, func(svc *service.MarkerService, _ *zap.Logger) error {
				ctx := cmd.Context()
				fmt.Fprintf(out, "[HIGHLIGHTS] Finding %s+ moments...\n", threshold)
				highlights, err := svc.Highlights(ctx, q.query(), threshold)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "[OK] Found %d high-significance moments\n", len(highlights))
				printHighlights(out, highlights, 5)

				if output != "" {
					location, err := svc.ExportJSON(ctx, output, highlights)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "\n[OK] Highlights saved to: %s\n", location)
				}
				return nil
			})
		},
	}
	q.register(cmd, 500, true)
	cmd.Flags().StringVar(&minSignificance, "min-significance", "HIGH", "minimum significance level (MEDIUM, HIGH, CRITICAL)")
	cmd.Flags().StringVar(&output, "output", "", "output file (JSON)")
	return cmd
}

func newServeCmd(flags *di.CLIFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the marker API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.ServerMode = true
			container, err := di.BuildCLIContainer(flags)
			if err != nil {
				return err
			}
			return container.Invoke(func(server ports.Server, src core.MessageSource, logger *zap.Logger) error {
				defer logger.Sync()
				defer src.Close()
				return runServer(server, logger)
			})
		},
	}
}

// runServer starts server and blocks until SIGINT or SIGTERM
func runServer(server ports.Server, logger *zap.Logger) error {
	if err := server.Start(); err != nil {
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}
