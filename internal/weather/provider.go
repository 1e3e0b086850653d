package weather

import (
	"context"
	"errors"
	"fmt"
)

// FailureReason classifies why a fetch did not produce a usable payload.
type FailureReason string

const (
	ReasonNoCredential  FailureReason = "no_credential"
	ReasonTimeout       FailureReason = "timeout"
	ReasonTransport     FailureReason = "transport"
	ReasonBadStatus     FailureReason = "bad_status"
	ReasonMalformedBody FailureReason = "malformed_body"
	ReasonCircuitOpen   FailureReason = "circuit_open"
)

// FetchError is returned by providers for every failed fetch.
type FetchError struct {
	Reason     FailureReason
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s (status %d): %v", e.Reason, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (status %d)", e.Reason, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	default:
		return string(e.Reason)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the failure reason from err. Errors that are not a
// *FetchError count as transport faults.
func ReasonOf(err error) FailureReason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ReasonTransport
}

// Query identifies what to fetch.
type Query struct {
	City  string
	Units Units
}

// Provider abstracts a remote current-weather source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) (Payload, error)
}

// Publisher receives every reading the poller produces.
type Publisher interface {
	Publish(r Reading)
	RecordFailure(reason FailureReason)
}
