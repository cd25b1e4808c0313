package scan

import "errors"

var (
	ErrInvalidRange  = errors.New("invalid score range")
	ErrInvalidThrows = errors.New("invalid throw count")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidMode   = errors.New("invalid mode")
	ErrTimeout       = errors.New("scan timed out")
)
