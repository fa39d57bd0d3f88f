package diagnostics

import "github.com/santhosh1815/hmi/internal/errors"

const (
	// Configuration errors
	ErrMissingEndpoint   = errors.ErrorCode("diagnostics_missing_endpoint")
	ErrMissingCredential = errors.ErrorCode("diagnostics_missing_credential")

	// Request errors
	ErrRequestFailed = errors.ErrorCode("diagnostics_request_failed")
	ErrBadResponse   = errors.ErrorCode("diagnostics_bad_response")

	// Service errors
	ErrBusy = errors.ErrorCode("diagnostics_busy")
)
