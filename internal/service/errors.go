package service

import "errors"

// Resolution failures. Callers match them with errors.Is; the wrapped
// cause carries the detail.
var (
	ErrSession           = errors.New("admin session could not be verified")
	ErrInvalidTransition = errors.New("invalid report status transition")
	ErrMissingLink       = errors.New("deposit report has no linked rental")
	ErrValidation        = errors.New("invalid decision input")
	ErrStore             = errors.New("document store operation failed")

	ErrReportNotFound = errors.New("report not found")
	ErrSaveInProgress = errors.New("another decision is being saved for this admin")
	ErrNotSettleable  = errors.New("rental deposit cannot be settled")
)
