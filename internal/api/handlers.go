package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MJE43/darts-checkout-go/internal/darts"
	"github.com/MJE43/darts-checkout-go/internal/display"
	"github.com/MJE43/darts-checkout-go/internal/scan"
)

const maxBodyBytes = 1 << 20

// handleFinish solves a finish request posted as JSON
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var req FinishRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := ValidateFinishRequest(&req); err != nil {
		s.handleFieldError(w, r, err)
		return
	}

	s.respondFinish(w, r, req.RemainingScore, req.RemainingThrows)
}

// handleFinishPath solves GET /finish/{score}/{throws}
func (s *Server) handleFinishPath(w http.ResponseWriter, r *http.Request) {
	score, err := parsePathScore(chi.URLParam(r, "score"))
	if err != nil {
		s.handleFieldError(w, r, err)
		return
	}
	throws, err := parsePathThrows(chi.URLParam(r, "throws"))
	if err != nil {
		s.handleFieldError(w, r, err)
		return
	}

	s.respondFinish(w, r, score, throws)
}

// handleRound solves a round request posted as JSON
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	var req RoundRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := ValidateRoundRequest(&req); err != nil {
		s.handleFieldError(w, r, err)
		return
	}

	s.respondRound(w, r, req.RemainingScore)
}

// handleRoundPath solves GET /round/{score}
func (s *Server) handleRoundPath(w http.ResponseWriter, r *http.Request) {
	score, err := parsePathScore(chi.URLParam(r, "score"))
	if err != nil {
		s.handleFieldError(w, r, err)
		return
	}

	s.respondRound(w, r, score)
}

func (s *Server) respondFinish(w http.ResponseWriter, r *http.Request, score, throws int) {
	c, err := s.solver.Finish(score, throws)
	if err != nil {
		s.errorHandler.HandleCheckoutError(w, r, err)
		return
	}

	s.logger.Info("finish_completed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("remaining_score", score),
		zap.Int("remaining_throws", throws),
		zap.Bool("possible", c.Possible),
		zap.Int("darts", c.Darts()),
	)

	s.writeJSON(w, http.StatusOK, newCheckoutResponse(darts.ModeFinish, score, throws, c))
}

func (s *Server) respondRound(w http.ResponseWriter, r *http.Request, score int) {
	c, err := s.solver.Round(score)
	if err != nil {
		s.errorHandler.HandleCheckoutError(w, r, err)
		return
	}

	s.logger.Info("round_completed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("remaining_score", score),
		zap.Bool("possible", c.Possible),
		zap.Int("darts", c.Darts()),
	)

	s.writeJSON(w, http.StatusOK, newCheckoutResponse(darts.ModeRound, score, 0, c))
}

func newCheckoutResponse(mode darts.Mode, score, throws int, c darts.Checkout) CheckoutResponse {
	style := display.StyleFor(mode)
	throwList := c.Throws
	if throwList == nil {
		throwList = []darts.Throw{}
	}
	return CheckoutResponse{
		Mode:            mode,
		RemainingScore:  score,
		RemainingThrows: throws,
		Possible:        c.Possible,
		Throws:          throwList,
		Labels:          display.Labels(c, style),
		Display:         display.Format(c, style),
		Darts:           c.Darts(),
		EngineVersion:   EngineVersion,
	}
}

// handleScan sweeps a score range
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scan.ScanRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := ValidateScanRequest(&req); err != nil {
		s.handleFieldError(w, r, err)
		return
	}

	if req.TimeoutMs == 0 && s.scanTimeout > 0 {
		req.TimeoutMs = int(s.scanTimeout / time.Millisecond)
	}

	requestID := middleware.GetReqID(r.Context())
	s.logger.Info("scan_request",
		zap.String("request_id", requestID),
		zap.String("score_range", fmt.Sprintf("%d-%d", req.ScoreStart, req.ScoreEnd)),
		zap.String("mode", string(req.Mode)),
		zap.Int("throws", req.Throws),
		zap.String("filter", string(req.Filter)),
		zap.Int("limit", req.Limit),
		zap.Int("timeout_ms", req.TimeoutMs),
	)

	start := time.Now()
	result, err := s.scanner.Scan(r.Context(), req)
	if err != nil {
		s.handleScanError(w, r, "scan", req.TimeoutMs, result, err)
		return
	}

	s.logger.Info("scan_completed",
		zap.String("request_id", requestID),
		zap.Int("hits_found", result.Summary.HitsFound),
		zap.Uint64("total_evaluated", result.Summary.TotalEvaluated),
		zap.Duration("duration", time.Since(start)),
	)

	s.writeJSON(w, http.StatusOK, ScanResponse{
		Hits:          result.Hits,
		Summary:       result.Summary,
		EngineVersion: EngineVersion,
		Echo:          result.Echo,
	})
}

// handleChart returns the full checkout table up to the board ceiling
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	throws, err := parseChartThrows(r.URL.Query().Get("throws"))
	if err != nil {
		s.handleFieldError(w, r, err)
		return
	}

	ctx := r.Context()
	if s.scanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.scanTimeout)
		defer cancel()
	}

	result, err := s.scanner.Chart(ctx, throws)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = scan.ErrTimeout
		}
		s.handleScanError(w, r, "chart", int(s.scanTimeout/time.Millisecond), result, err)
		return
	}

	s.logger.Info("chart_completed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("throws", throws),
		zap.Int("possible", result.Summary.Possible),
	)

	s.writeJSON(w, http.StatusOK, ScanResponse{
		Hits:          result.Hits,
		Summary:       result.Summary,
		EngineVersion: EngineVersion,
		Echo:          result.Echo,
	})
}

// handleModes lists the solver modes
func (s *Server) handleModes(w http.ResponseWriter, r *http.Request) {
	specs := darts.Modes()
	modes := make([]ModeInfo, 0, len(specs))
	for _, spec := range specs {
		modes = append(modes, ModeInfo{
			ModeSpec:  spec,
			BullLabel: display.Label(darts.Throw{Segment: darts.Bull, Multiplier: darts.Double}, display.StyleFor(spec.ID)),
		})
	}

	s.writeJSON(w, http.StatusOK, ModesResponse{
		Modes:         modes,
		Ceiling:       s.solver.Board().Ceiling(),
		MaxScore:      darts.MaxRemainingScore,
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handleScanError(w http.ResponseWriter, r *http.Request, operation string, timeoutMs int, result *scan.ScanResult, err error) {
	switch {
	case errors.Is(err, scan.ErrTimeout):
		var evaluated uint64
		if result != nil {
			evaluated = result.Summary.TotalEvaluated
		}
		s.errorHandler.HandleTimeoutError(w, r, operation, timeoutMs, evaluated)
	case errors.Is(err, context.Canceled):
		s.logger.Warn("scan_cancelled",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("operation", operation),
		)
		s.errorHandler.HandleError(w, r, err, http.StatusServiceUnavailable)
	default:
		var fe *FieldError
		if errors.As(err, &fe) || errors.Is(err, scan.ErrInvalidRange) || errors.Is(err, scan.ErrInvalidThrows) {
			s.errorHandler.HandleValidationError(w, r, ErrTypeInvalidScan, "scan", err.Error())
			return
		}
		s.errorHandler.HandleCheckoutError(w, r, err)
	}
}

// handleFieldError writes a 400 for a failed field validation
func (s *Server) handleFieldError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *FieldError
	if errors.As(err, &fe) {
		s.errorHandler.HandleValidationError(w, r, fe.ErrType, fe.Field, fe.Err.Error())
		return
	}
	s.errorHandler.HandleValidationError(w, r, ErrTypeValidation, "", err.Error())
}

// decodeJSON reads the request body into v, writing a 400 on failure
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorHandler.HandleValidationError(w, r, ErrTypeValidation, "body", "Invalid JSON format: "+err.Error())
		return false
	}
	return true
}
