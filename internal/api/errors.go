package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MJE43/darts-checkout-go/internal/darts"
)

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]interface{}
	requestID string
	cause     error
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// WithCause adds the underlying cause error
func (eb *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	eb.cause = err
	if err != nil {
		eb.context["cause"] = err.Error()
	}
	return eb
}

// Build creates the final EngineError
func (eb *ErrorBuilder) Build() EngineError {
	return EngineError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   eb.context,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// HandleError processes an error and writes appropriate HTTP response
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error, defaultStatus int) {
	requestID := middleware.GetReqID(r.Context())

	var engineErr EngineError
	if errors.As(err, &engineErr) {
		if engineErr.RequestID == "" {
			engineErr.RequestID = requestID
		}
		eh.logError(r, engineErr, defaultStatus)
		eh.writeErrorResponse(w, defaultStatus, engineErr)
		return
	}

	engineErr = NewError(ErrTypeInternal, err.Error()).
		WithRequestID(requestID).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, defaultStatus)
	eh.writeErrorResponse(w, defaultStatus, engineErr)
}

// HandleValidationError handles validation-specific errors
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, errType, field, message string) {
	requestID := middleware.GetReqID(r.Context())

	engineErr := NewError(errType, fmt.Sprintf("Validation failed: %s", message)).
		WithRequestID(requestID).
		WithContext("field", field).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, http.StatusBadRequest)
	eh.writeErrorResponse(w, http.StatusBadRequest, engineErr)
}

// HandleCheckoutError maps a solver error to a response. Out-of-range
// arguments become 422; anything else is an internal error.
func (eh *ErrorHandler) HandleCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetReqID(r.Context())

	var rangeErr *darts.OutOfRangeError
	if !errors.As(err, &rangeErr) {
		eh.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	engineErr := NewError(ErrTypeOutOfRange, rangeErr.Error()).
		WithRequestID(requestID).
		WithContext("param", rangeErr.Param).
		WithContext("value", rangeErr.Value).
		WithContext("path", r.URL.Path).
		Build()

	eh.logError(r, engineErr, http.StatusUnprocessableEntity)
	eh.writeErrorResponse(w, http.StatusUnprocessableEntity, engineErr)
}

// HandleTimeoutError handles timeout-specific errors
func (eh *ErrorHandler) HandleTimeoutError(w http.ResponseWriter, r *http.Request, operation string, timeoutMs int, evaluated uint64) {
	requestID := middleware.GetReqID(r.Context())

	engineErr := NewError(ErrTypeTimeout, fmt.Sprintf("Operation timed out: %s", operation)).
		WithRequestID(requestID).
		WithContext("operation", operation).
		WithContext("timeout_ms", timeoutMs).
		WithContext("total_evaluated", evaluated).
		WithContext("path", r.URL.Path).
		Build()

	eh.logError(r, engineErr, http.StatusRequestTimeout)
	eh.writeErrorResponse(w, http.StatusRequestTimeout, engineErr)
}

// logError logs the error with appropriate level and context
func (eh *ErrorHandler) logError(r *http.Request, engineErr EngineError, status int) {
	category := GetErrorCategory(engineErr.Type)

	fields := []zap.Field{
		zap.String("type", engineErr.Type),
		zap.String("category", string(category)),
		zap.String("message", engineErr.Message),
		zap.Int("status", status),
		zap.String("request_id", engineErr.RequestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("remote_ip", r.RemoteAddr),
		zap.Any("context", engineErr.Context),
	}

	if category == CategoryValidation || status < 500 {
		eh.logger.Warn("error_occurred", fields...)
		return
	}
	eh.logger.Error("error_occurred", fields...)
}

// writeErrorResponse writes the error response as JSON
func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, engineErr EngineError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.Header().Set("X-Error-Type", engineErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(engineErr.Type)))
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(engineErr); err != nil {
		eh.logger.Error("error_encode_failed", zap.Error(err))
	}
}

// RecoveryHandler provides panic recovery with structured error logging
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				requestID := middleware.GetReqID(r.Context())

				eh.logger.Error("panic_recovered",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Any("panic", rvr),
					zap.Stack("stack"),
				)

				engineErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					WithContext("panic", fmt.Sprintf("%v", rvr)).
					WithContext("path", r.URL.Path).
					WithContext("method", r.Method).
					Build()

				eh.writeErrorResponse(w, http.StatusInternalServerError, engineErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
