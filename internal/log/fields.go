package log

import (
	"errors"

	"kakeibo/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldOperation = "operation"
	FieldRecordID  = "record_id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldKind      = "kind"
	FieldCount     = "count"
	FieldKey       = "key"
	FieldBackend   = "backend"
	FieldMonth     = "month"
	FieldRevision  = "revision"
	FieldInput     = "input"
	FieldTraceID   = "trace_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentBackend = "backend"
	ComponentScreens = "screens"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpLoad       = "load"
	OpRefresh    = "refresh"
	OpAppend     = "append"
	OpUpdateMemo = "update_memo"
	OpDelete     = "delete"
	OpReset      = "reset"
	OpAddItem    = "add_item"
	OpRemoveItem = "remove_item"
	OpMoveItem   = "move_item"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found_error"
	ErrorTypeStorageRead  = "storage_read_error"
	ErrorTypeStorageWrite = "storage_write_error"
	ErrorTypeInternal     = "internal_error"
)

// ErrorType classifies err into one of the ErrorType constants.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, core.ErrValidation):
		return ErrorTypeValidation
	case errors.Is(err, core.ErrNotFound):
		return ErrorTypeNotFound
	case errors.Is(err, core.ErrStorageRead):
		return ErrorTypeStorageRead
	case errors.Is(err, core.ErrStorageWrite):
		return ErrorTypeStorageWrite
	default:
		return ErrorTypeInternal
	}
}

// IsUserError reports whether err was caused by user input rather than
// the environment.
func IsUserError(err error) bool {
	t := ErrorType(err)
	return t == ErrorTypeValidation || t == ErrorTypeNotFound
}

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error and its classification
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = ErrorType(err)
	}
	return f
}

// WithRecord adds record-related fields
func (f LogFields) WithRecord(r core.Record) LogFields {
	f[FieldRecordID] = r.ID
	f[FieldCategory] = r.Category
	f[FieldAmount] = r.Amount.String()
	f[FieldKind] = r.Kind().String()
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
