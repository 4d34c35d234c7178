package types

import (
	"errors"
	"fmt"
)

// FailureKind classifies a fetch failure after retries are exhausted.
type FailureKind string

const (
	// FailureRateLimited means the upstream kept answering 429 for every
	// retry attempt.
	FailureRateLimited FailureKind = "RATE_LIMITED"

	// FailureUnreachable means transport-level errors (timeout, connection
	// reset) or non-200 statuses persisted through the retry budget.
	FailureUnreachable FailureKind = "UNREACHABLE"

	// FailureInvalidResponse means the upstream answered 200 but the body
	// could not be decoded.
	FailureInvalidResponse FailureKind = "INVALID_RESPONSE"
)

// FetchError is returned by the fetcher when a logical page fetch fails
// after exhausting its retry budget. Throttled and transient errors are
// absorbed by retries and never surface directly.
type FetchError struct {
	Kind     FailureKind
	Endpoint string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s failed (%s, %d attempts): %v", e.Endpoint, e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch %s failed (%s, %d attempts)", e.Endpoint, e.Kind, e.Attempts)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FailureKindOf returns the failure kind of err, or "" if err is not a
// FetchError.
func FailureKindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
