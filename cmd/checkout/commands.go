package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MJE43/darts-checkout-go/internal/api"
	"github.com/MJE43/darts-checkout-go/internal/darts"
	"github.com/MJE43/darts-checkout-go/internal/display"
	"github.com/MJE43/darts-checkout-go/internal/scan"
)

const shutdownTimeout = 10 * time.Second

func (a *app) newFinishCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "finish <score> <throws>",
		Short: "Find a checkout using at most the given number of darts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := display.ParseScore(args[0])
			if err != nil {
				return err
			}
			throws, err := display.ParseThrows(args[1])
			if err != nil {
				return err
			}

			c, err := a.solver.Finish(score, throws)
			if err != nil {
				return err
			}
			a.logger.Debug("finish_completed",
				zap.Int("remaining_score", score),
				zap.Int("remaining_throws", throws),
				zap.Bool("possible", c.Possible),
			)
			return a.printCheckout(darts.ModeFinish, score, throws, c, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func (a *app) newRoundCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "round <score>",
		Short: "Find the shortest checkout within one turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := display.ParseScore(args[0])
			if err != nil {
				return err
			}

			c, err := a.solver.Round(score)
			if err != nil {
				return err
			}
			a.logger.Debug("round_completed",
				zap.Int("remaining_score", score),
				zap.Bool("possible", c.Possible),
			)
			return a.printCheckout(darts.ModeRound, score, 0, c, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func (a *app) newChartCmd() *cobra.Command {
	var throws int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the checkout for every score up to the board ceiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if throws != 0 && !display.ThrowsInRange(throws) {
				return fmt.Errorf("%w: got %d", display.ErrThrowsOutOfRange, throws)
			}

			scanner := scan.NewScanner(a.solver, a.cfg.Scan.Workers)
			result, err := scanner.Chart(cmd.Context(), throws)
			if err != nil {
				return err
			}
			return a.printHits(result)
		},
	}
	cmd.Flags().IntVar(&throws, "throws", darts.MaxThrows, "darts available (1-3); 0 builds the round chart")
	return cmd
}

func (a *app) newScanCmd() *cobra.Command {
	var (
		req     scan.ScanRequest
		mode    string
		filter  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Evaluate a range of remaining scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Mode = darts.Mode(mode)
			req.Filter = scan.Filter(filter)
			if timeout == 0 {
				timeout = a.cfg.Scan.Timeout
			}
			req.TimeoutMs = int(timeout / time.Millisecond)

			scanner := scan.NewScanner(a.solver, a.cfg.Scan.Workers)
			a.logger.Info("scan_request",
				zap.Int("score_start", req.ScoreStart),
				zap.Int("score_end", req.ScoreEnd),
				zap.String("mode", mode),
				zap.Int("workers", scanner.Workers()),
			)

			result, err := scanner.Scan(cmd.Context(), req)
			if err != nil && !errors.Is(err, scan.ErrTimeout) {
				return err
			}
			if printErr := a.printHits(result); printErr != nil {
				return printErr
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&req.ScoreStart, "from", 2, "first remaining score")
	flags.IntVar(&req.ScoreEnd, "to", 170, "last remaining score")
	flags.StringVar(&mode, "mode", string(darts.ModeFinish), "finish or round")
	flags.IntVar(&req.Throws, "throws", darts.MaxThrows, "darts available in finish mode")
	flags.StringVar(&filter, "filter", string(scan.FilterPossible), "possible, impossible or all")
	flags.IntVar(&req.Limit, "limit", 0, "maximum number of scores to print (0 for no limit)")
	flags.DurationVar(&timeout, "timeout", 0, "scan timeout (defaults to the configured scan timeout)")
	return cmd
}

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checkout HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(a.cfg, a.logger)
			if _, err := server.Start(); err != nil {
				return fmt.Errorf("listen on %s: %w", a.cfg.Server.Addr, err)
			}

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func (a *app) printCheckout(mode darts.Mode, score, throws int, c darts.Checkout, asJSON bool) error {
	style := display.StyleFor(mode)
	if !asJSON {
		_, err := fmt.Fprintln(a.out, display.Format(c, style))
		return err
	}

	out := struct {
		Mode           darts.Mode     `json:"mode"`
		RemainingScore int            `json:"remaining_score"`
		Throws         int            `json:"remaining_throws,omitempty"`
		Checkout       darts.Checkout `json:"checkout"`
		Display        string         `json:"display"`
	}{mode, score, throws, c, display.Format(c, style)}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (a *app) printHits(result *scan.ScanResult) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, hit := range result.Hits {
		fmt.Fprintf(tw, "%d\t%s\n", hit.Score, hit.Display)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := result.Summary
	_, err := fmt.Fprintf(a.out, "\nevaluated %d, possible %d, impossible %d, coverage %s%%, mean darts %s\n",
		s.TotalEvaluated, s.Possible, s.Impossible, s.CoveragePct.StringFixed(2), s.MeanDarts.StringFixed(2))
	if err != nil {
		return err
	}
	if s.TimedOut {
		_, err = fmt.Fprintln(a.out, "scan timed out; results are partial")
	}
	return err
}
