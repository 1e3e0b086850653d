package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-exporter/internal/weather"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

var (
	errNoHTTPClient = errors.New("http client not configured")
	errUnexpected   = errors.New("unexpected status code")
	errMissingMain  = errors.New(`response has no "main" object`)
)

// newBreaker opens after failures consecutive failed calls and probes again
// after a minute. failures <= 0 disables tripping.
func newBreaker(name string, failures int) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     1 * time.Minute,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return failures > 0 && c.ConsecutiveFailures >= uint32(failures)
		},
	})
}

// doRequest executes req once through the circuit breaker and returns the body
// of a 200 response. Every failure is a *weather.FetchError.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) ([]byte, error) {
	if client == nil {
		return nil, &weather.FetchError{Reason: weather.ReasonTransport, Err: errNoHTTPClient}
	}

	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, &weather.FetchError{Reason: classifyTransport(execErr), Err: execErr}
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			return nil, &weather.FetchError{Reason: classifyTransport(readErr), Err: readErr}
		}

		if resp.StatusCode != http.StatusOK {
			return nil, &weather.FetchError{
				Reason:     weather.ReasonBadStatus,
				StatusCode: resp.StatusCode,
				Err:        errUnexpected,
			}
		}

		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.FetchError{Reason: weather.ReasonCircuitOpen, Err: err}
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, &weather.FetchError{
			Reason: weather.ReasonTransport,
			Err:    fmt.Errorf("unexpected result type %T from circuit breaker", result),
		}
	}
	return body, nil
}

func classifyTransport(err error) weather.FailureReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return weather.ReasonTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return weather.ReasonTimeout
	}
	return weather.ReasonTransport
}
