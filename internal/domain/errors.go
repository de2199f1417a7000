package domain

import "errors"

// Failure taxonomy for external data acquisition. All of these are recovered
// inside the gateway and resolver; none reach the composer.
var (
	// ErrConfigurationSkip means the domain is disabled or its URL is unset
	ErrConfigurationSkip = errors.New("configuration skip")

	// ErrTransport covers timeouts, connection errors and non-2xx statuses
	ErrTransport = errors.New("transport failure")

	// ErrParse means the response did not have the expected shape
	ErrParse = errors.New("parse failure")

	// ErrDataUnavailable means a prerequisite (such as a location) is missing
	ErrDataUnavailable = errors.New("data unavailable")
)

// Outcome names a failure class for logs and metrics
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrConfigurationSkip):
		return "skipped"
	case errors.Is(err, ErrTransport):
		return "transport_failure"
	case errors.Is(err, ErrParse):
		return "parse_failure"
	case errors.Is(err, ErrDataUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
