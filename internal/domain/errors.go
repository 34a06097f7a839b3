package domain

import "errors"

// Policy-level failures, recoverable through a fallback source
var (
	ErrEmptyLibrary       = errors.New("library is empty")
	ErrNoMatchingContent  = errors.New("no library item matches the content filter")
	ErrNoResultsAvailable = errors.New("provider returned no results")
)

// ErrQuotaExceeded is returned when the durable store has no room left for a write
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrNotFound is returned when a requested id is absent. It is never fatal.
var ErrNotFound = errors.New("wallpaper not found")

// QuotaRemediation is the user-facing hint attached to quota failures
const QuotaRemediation = "Storage is full: remove items from your library to free up space"

// QuotaError is surfaced after the automatic degrade-and-retry step also failed
type QuotaError struct {
	Key string
	Err error
}

func (e *QuotaError) Error() string {
	return QuotaRemediation
}

// Unwrap exposes ErrQuotaExceeded to errors.Is
func (e *QuotaError) Unwrap() error {
	return e.Err
}

// IsPolicyFailure reports whether err is one of the recoverable shuffle outcomes
func IsPolicyFailure(err error) bool {
	return errors.Is(err, ErrEmptyLibrary) ||
		errors.Is(err, ErrNoMatchingContent) ||
		errors.Is(err, ErrNoResultsAvailable)
}
