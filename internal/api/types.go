package api

import (
	"github.com/MJE43/darts-checkout-go/internal/darts"
	"github.com/MJE43/darts-checkout-go/internal/scan"
)

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeInvalidScore  = "invalid_score"
	ErrTypeInvalidThrows = "invalid_throws"
	ErrTypeInvalidScan   = "invalid_scan"
	ErrTypeValidation    = "validation_error"

	// Solver errors
	ErrTypeOutOfRange = "out_of_range"

	// System errors
	ErrTypeTimeout  = "timeout"
	ErrTypeInternal = "internal_error"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryCheckout   ErrorCategory = "checkout"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidScore, ErrTypeInvalidThrows, ErrTypeInvalidScan, ErrTypeValidation:
		return CategoryValidation
	case ErrTypeOutOfRange:
		return CategoryCheckout
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// VersionInfo contains engine version information
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}

// FinishRequest asks for a checkout within a fixed number of darts.
type FinishRequest struct {
	RemainingScore  int `json:"remaining_score"`
	RemainingThrows int `json:"remaining_throws"`
}

// RoundRequest asks for the shortest checkout within one turn.
type RoundRequest struct {
	RemainingScore int `json:"remaining_score"`
}

// CheckoutResponse is returned by the finish and round endpoints
type CheckoutResponse struct {
	Mode            darts.Mode    `json:"mode"`
	RemainingScore  int           `json:"remaining_score"`
	RemainingThrows int           `json:"remaining_throws,omitempty"`
	Possible        bool          `json:"possible"`
	Throws          []darts.Throw `json:"throws"`
	Labels          []string      `json:"labels"`
	Display         string        `json:"display"`
	Darts           int           `json:"darts"`
	EngineVersion   string        `json:"engine_version"`
}

// ScanResponse represents the complete scan response
type ScanResponse struct {
	Hits          []scan.Hit       `json:"hits"`
	Summary       scan.Summary     `json:"summary"`
	EngineVersion string           `json:"engine_version"`
	Echo          scan.ScanRequest `json:"echo"`
}

// ModeInfo describes one solver mode and how its results are labelled
type ModeInfo struct {
	darts.ModeSpec
	BullLabel string `json:"bull_label"`
}

// ModesResponse represents the modes metadata response
type ModesResponse struct {
	Modes         []ModeInfo `json:"modes"`
	Ceiling       int        `json:"ceiling"`
	MaxScore      int        `json:"max_score"`
	EngineVersion string     `json:"engine_version"`
}
