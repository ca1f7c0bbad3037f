package domain

import "fmt"

// ValidationCode identifies which check rejected a candidate password.
type ValidationCode string

const (
	CodeEmptyPassword      ValidationCode = "empty_password"
	CodeTooShort           ValidationCode = "too_short"
	CodeMissingDigit       ValidationCode = "missing_digit"
	CodeMissingSpecialChar ValidationCode = "missing_special_char"
	CodeSameAsUsername     ValidationCode = "same_as_username"
	CodePreviouslyUsed     ValidationCode = "previously_used"
)

// ValidationError is an expected, caller-recoverable rejection of the
// candidate password. Exactly one check is reported: the first one to fail.
type ValidationError struct {
	Code    ValidationCode
	Message string
	// Required carries the minimum length for CodeTooShort and is zero otherwise.
	Required int
}

// Error implements error for ValidationError.
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// HistoryCause classifies why the history store could not answer.
type HistoryCause string

const (
	HistoryCauseNotFound         HistoryCause = "not_found"
	HistoryCausePermissionDenied HistoryCause = "permission_denied"
	HistoryCauseParse            HistoryCause = "parse"
	HistoryCauseTimeout          HistoryCause = "timeout"
	HistoryCauseIO               HistoryCause = "io"
)

// HistoryUnavailableError reports that the reuse check could not run because
// the history store failed. It is distinct from CodePreviouslyUsed: the
// password was not rejected, the infrastructure was. Callers decide whether
// to retry, fall back, or reject.
type HistoryUnavailableError struct {
	Cause HistoryCause
	Err   error
}

// Error implements error for HistoryUnavailableError.
func (e *HistoryUnavailableError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("password history unavailable: %s", e.Cause)
	}
	return fmt.Sprintf("password history unavailable (%s): %v", e.Cause, e.Err)
}

// Unwrap exposes the underlying store error for errors.Is/As.
func (e *HistoryUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
