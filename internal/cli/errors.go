package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrConfigInvalid = "CONFIG_INVALID"

	// Source errors
	ErrSourceInvalid   = "SOURCE_INVALID"
	ErrFieldMapInvalid = "FIELD_MAP_INVALID"

	// Checklist errors
	ErrChecklistNotFound = "CHECKLIST_NOT_FOUND"
	ErrChecklistExists   = "CHECKLIST_EXISTS"
	ErrEntryNotFound     = "ENTRY_NOT_FOUND"
	ErrEntryInvalid      = "ENTRY_INVALID"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Database errors
	ErrDatabaseError   = "DATABASE_ERROR"
	ErrDatabaseConnect = "DATABASE_UNREACHABLE"

	// Input errors
	ErrInvalidInput         = "INVALID_INPUT"
	ErrMissingArgument      = "MISSING_ARGUMENT"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"
)

// Warning codes for non-fatal issues.
const (
	WarnRowsSkipped = "ROWS_SKIPPED"
)
