package api

import (
	"fmt"

	"github.com/MJE43/darts-checkout-go/internal/darts"
	"github.com/MJE43/darts-checkout-go/internal/display"
	"github.com/MJE43/darts-checkout-go/internal/scan"
)

// FieldError names the request field a validation error belongs to.
type FieldError struct {
	Field   string
	ErrType string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidateFinishRequest validates a finish request
func ValidateFinishRequest(req *FinishRequest) error {
	if !display.ScoreInRange(req.RemainingScore) {
		return &FieldError{
			Field:   "remaining_score",
			ErrType: ErrTypeInvalidScore,
			Err:     fmt.Errorf("%w: got %d", display.ErrScoreOutOfRange, req.RemainingScore),
		}
	}
	if !display.ThrowsInRange(req.RemainingThrows) {
		return &FieldError{
			Field:   "remaining_throws",
			ErrType: ErrTypeInvalidThrows,
			Err:     fmt.Errorf("%w: got %d", display.ErrThrowsOutOfRange, req.RemainingThrows),
		}
	}
	return nil
}

// ValidateRoundRequest validates a round request
func ValidateRoundRequest(req *RoundRequest) error {
	if !display.ScoreInRange(req.RemainingScore) {
		return &FieldError{
			Field:   "remaining_score",
			ErrType: ErrTypeInvalidScore,
			Err:     fmt.Errorf("%w: got %d", display.ErrScoreOutOfRange, req.RemainingScore),
		}
	}
	return nil
}

// ValidateScanRequest applies scanner defaults and validates the request
func ValidateScanRequest(req *scan.ScanRequest) error {
	if err := scan.Validate(req); err != nil {
		return &FieldError{Field: "scan", ErrType: ErrTypeInvalidScan, Err: err}
	}
	return nil
}

// parsePathScore parses the {score} URL segment
func parsePathScore(text string) (int, error) {
	score, err := display.ParseScore(text)
	if err != nil {
		return 0, &FieldError{Field: "score", ErrType: ErrTypeInvalidScore, Err: err}
	}
	return score, nil
}

// parsePathThrows parses the {throws} URL segment
func parsePathThrows(text string) (int, error) {
	throws, err := display.ParseThrows(text)
	if err != nil {
		return 0, &FieldError{Field: "throws", ErrType: ErrTypeInvalidThrows, Err: err}
	}
	return throws, nil
}

// parseChartThrows parses the optional throws query value; empty means 3
// and "0" or "round" selects round mode.
func parseChartThrows(text string) (int, error) {
	switch text {
	case "":
		return darts.MaxThrows, nil
	case "0", string(darts.ModeRound):
		return 0, nil
	}
	return parsePathThrows(text)
}
