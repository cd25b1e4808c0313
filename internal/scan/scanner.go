package scan

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MJE43/darts-checkout-go/internal/darts"
	"github.com/MJE43/darts-checkout-go/internal/display"
)

// Filter selects which scores a scan reports.
type Filter string

const (
	FilterPossible   Filter = "possible"
	FilterImpossible Filter = "impossible"
	FilterAll        Filter = "all"
)

// Matches reports whether a checkout passes the filter.
func (f Filter) Matches(c darts.Checkout) bool {
	switch f {
	case FilterPossible:
		return c.Possible
	case FilterImpossible:
		return !c.Possible
	case FilterAll:
		return true
	default:
		return false
	}
}

// ScanRequest describes a sweep over a range of remaining scores
type ScanRequest struct {
	ScoreStart int        `json:"score_start"`
	ScoreEnd   int        `json:"score_end"`
	Mode       darts.Mode `json:"mode"`
	Throws     int        `json:"throws,omitempty"` // finish mode only; 0 means 3
	Filter     Filter     `json:"filter"`           // default "possible"
	Limit      int        `json:"limit,omitempty"`
	TimeoutMs  int        `json:"timeout_ms,omitempty"`
}

// Hit is one reported score.
type Hit struct {
	Score    int            `json:"score"`
	Checkout darts.Checkout `json:"checkout"`
	Display  string         `json:"display"`
}

// Summary contains aggregate statistics over every evaluated score, not
// only the reported hits.
type Summary struct {
	TotalEvaluated uint64          `json:"total_evaluated"`
	HitsFound      int             `json:"hits_found"`
	Possible       int             `json:"possible"`
	Impossible     int             `json:"impossible"`
	CoveragePct    decimal.Decimal `json:"coverage_pct"`
	MeanDarts      decimal.Decimal `json:"mean_darts"`
	ByDarts        map[int]int     `json:"by_darts"`
	TimedOut       bool            `json:"timed_out,omitempty"`
}

// ScanResult contains the complete scan results
type ScanResult struct {
	Hits    []Hit       `json:"hits"`
	Summary Summary     `json:"summary"`
	Echo    ScanRequest `json:"echo"`
}

// ScanJob is a contiguous batch of scores handed to one worker.
type ScanJob struct {
	ScoreStart int
	ScoreEnd   int
}

// outcome is the per-score slot a worker fills in.
type outcome struct {
	done     bool
	checkout darts.Checkout
}

// Scanner evaluates score ranges in parallel.
type Scanner struct {
	solver      *darts.Solver
	workerCount int
	batchSize   int
}

// NewScanner creates a scanner. workers <= 0 uses GOMAXPROCS.
func NewScanner(solver *darts.Solver, workers int) *Scanner {
	if solver == nil {
		solver = darts.NewSolver()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{
		solver:      solver,
		workerCount: workers,
		batchSize:   16,
	}
}

// Workers returns the number of worker goroutines per scan.
func (s *Scanner) Workers() int {
	return s.workerCount
}

// Validate normalises defaults and checks a request.
func Validate(req *ScanRequest) error {
	if req.ScoreStart < 1 || req.ScoreEnd > darts.MaxRemainingScore || req.ScoreEnd < req.ScoreStart {
		return fmt.Errorf("%w: %d-%d (must satisfy 1 <= start <= end <= %d)",
			ErrInvalidRange, req.ScoreStart, req.ScoreEnd, darts.MaxRemainingScore)
	}

	mode, err := darts.ParseMode(string(req.Mode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMode, err)
	}
	req.Mode = mode

	if req.Mode == darts.ModeFinish {
		if req.Throws == 0 {
			req.Throws = darts.MaxThrows
		}
		if req.Throws < 1 || req.Throws > darts.MaxThrows {
			return fmt.Errorf("%w: %d", ErrInvalidThrows, req.Throws)
		}
	} else {
		req.Throws = 0
	}

	if req.Filter == "" {
		req.Filter = FilterPossible
	}
	switch req.Filter {
	case FilterPossible, FilterImpossible, FilterAll:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFilter, req.Filter)
	}

	if req.Limit < 0 {
		return fmt.Errorf("limit must be >= 0")
	}
	if req.TimeoutMs < 0 {
		return fmt.Errorf("timeout_ms must be >= 0")
	}
	return nil
}

// Scan evaluates every score in the request range and returns the ones
// matching the filter, ordered by score.
//
// If the request timeout expires the partial result is returned together
// with ErrTimeout. Cancellation of ctx itself returns ctx.Err().
func (s *Scanner) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}

	scanCtx := ctx
	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	outcomes := make([]outcome, req.ScoreEnd-req.ScoreStart+1)
	var evaluated uint64

	g, gctx := errgroup.WithContext(scanCtx)
	jobs := make(chan ScanJob, s.workerCount*2)

	g.Go(func() error {
		return s.generateJobs(gctx, jobs, req.ScoreStart, req.ScoreEnd)
	})

	for i := 0; i < s.workerCount; i++ {
		g.Go(func() error {
			for {
				select {
				case job, ok := <-jobs:
					if !ok {
						return nil
					}
					if err := s.processJob(gctx, job, req, outcomes, &evaluated); err != nil {
						return err
					}
				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	err := g.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	timedOut := false
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		timedOut = true
	}

	result := collect(req, outcomes, atomic.LoadUint64(&evaluated), timedOut)
	if timedOut {
		return result, ErrTimeout
	}
	return result, nil
}

// Chart returns the full checkout table from 2 up to the board ceiling.
// throws == 0 builds the table in round mode.
func (s *Scanner) Chart(ctx context.Context, throws int) (*ScanResult, error) {
	req := ScanRequest{
		ScoreStart: 2,
		ScoreEnd:   s.solver.Board().Ceiling(),
		Mode:       darts.ModeFinish,
		Throws:     throws,
		Filter:     FilterAll,
	}
	if throws == 0 {
		req.Mode = darts.ModeRound
	}
	return s.Scan(ctx, req)
}

// processJob evaluates one batch; each score owns its own slot in outcomes.
func (s *Scanner) processJob(ctx context.Context, job ScanJob, req ScanRequest, outcomes []outcome, evaluated *uint64) error {
	for score := job.ScoreStart; score <= job.ScoreEnd; score++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, err := s.solver.Solve(req.Mode, score, req.Throws)
		if err != nil {
			return fmt.Errorf("score %d: %w", score, err)
		}

		outcomes[score-req.ScoreStart] = outcome{done: true, checkout: c}
		atomic.AddUint64(evaluated, 1)
	}
	return nil
}

// generateJobs splits the range into batches.
func (s *Scanner) generateJobs(ctx context.Context, jobs chan<- ScanJob, start, end int) error {
	defer close(jobs)

	for current := start; current <= end; {
		batchEnd := current + s.batchSize - 1
		if batchEnd > end {
			batchEnd = end
		}

		select {
		case jobs <- ScanJob{ScoreStart: current, ScoreEnd: batchEnd}:
			current = batchEnd + 1
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// collect builds hits and summary statistics from the filled slots.
func collect(req ScanRequest, outcomes []outcome, evaluated uint64, timedOut bool) *ScanResult {
	style := display.StyleFor(req.Mode)
	summary := Summary{
		TotalEvaluated: evaluated,
		ByDarts:        make(map[int]int),
		TimedOut:       timedOut,
	}

	hits := make([]Hit, 0)
	totalDarts := 0
	for i, o := range outcomes {
		if !o.done {
			continue
		}
		if o.checkout.Possible {
			summary.Possible++
			totalDarts += o.checkout.Darts()
			summary.ByDarts[o.checkout.Darts()]++
		} else {
			summary.Impossible++
		}

		if req.Filter.Matches(o.checkout) {
			hits = append(hits, Hit{
				Score:    req.ScoreStart + i,
				Checkout: o.checkout,
				Display:  display.Format(o.checkout, style),
			})
		}
	}

	// outcomes is indexed by score, so hits are in ascending order here
	summary.HitsFound = len(hits)
	if req.Limit > 0 && len(hits) > req.Limit {
		hits = hits[:req.Limit]
	}

	summary.CoveragePct = ratio(summary.Possible*100, summary.Possible+summary.Impossible)
	summary.MeanDarts = ratio(totalDarts, summary.Possible)

	return &ScanResult{
		Hits:    hits,
		Summary: summary,
		Echo:    req,
	}
}

// ratio returns num/den rounded to two places, or zero when den is zero.
func ratio(num, den int) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(num)).Div(decimal.NewFromInt(int64(den))).Round(2)
}
