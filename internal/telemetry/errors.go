package telemetry

import "github.com/santhosh1815/hmi/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("telemetry_invalid_db_path")

	// Collection Errors
	ErrInvalidSample = errors.ErrorCode("telemetry_invalid_sample")
	ErrRecordFailed  = errors.ErrorCode("telemetry_record_failed")

	// Storage Errors
	ErrStorageInit       = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageClose      = errors.ErrorCode("telemetry_storage_close_failed")
	ErrTransactionFailed = errors.ErrorCode("telemetry_transaction_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("telemetry_operation_timeout")
	ErrServiceShutdown  = errors.ErrorCode("telemetry_service_shutdown_failed")
)
