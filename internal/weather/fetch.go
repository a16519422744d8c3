package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// FailReason classifies why a fetch produced no payload.
type FailReason string

const (
	FailTimeout    FailReason = "timeout"
	FailNetwork    FailReason = "network"
	FailHTTPStatus FailReason = "http_status"
	FailDecode     FailReason = "decode"
)

// FetchError is the failure value returned by the fetcher. Callers branch
// on Reason and fall back to an unavailable state; nothing here is fatal.
type FetchError struct {
	Reason FailReason
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Reason == FailHTTPStatus {
		return fmt.Sprintf("fetch failed (%s %d)", e.Reason, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s)", e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// statusError carries a non-2xx code through the circuit breaker.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

// Fetcher issues bounded GET requests against one upstream endpoint. One
// circuit breaker per endpoint keeps a flapping upstream from being hammered;
// there are no retries, a failed request surfaces immediately.
type Fetcher struct {
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher named for breaker observability.
func NewFetcher(client *http.Client, name string) *Fetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Fetcher{client: client, circuit: cb}
}

// FetchJSON GETs url with the given timeout and returns the raw JSON body.
// On failure the returned error is always a *FetchError; the request is
// cancelled once the timeout elapses, so the call never hangs.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Reason: FailNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	result, err := f.circuit.Execute(func() (interface{}, error) {
		resp, execErr := f.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &statusError{code: resp.StatusCode}
		}

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}
		return body, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, &FetchError{Reason: FailDecode, Err: errors.New("unexpected result type from circuit breaker")}
	}

	if !json.Valid(body) {
		return nil, &FetchError{Reason: FailDecode, Err: errors.New("response body is not valid JSON")}
	}
	return body, nil
}

// classify maps a transport-level error onto the fetch failure taxonomy.
func classify(err error) *FetchError {
	var st *statusError
	if errors.As(err, &st) {
		return &FetchError{Reason: FailHTTPStatus, Status: st.code, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Reason: FailTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Reason: FailTimeout, Err: err}
	}

	// Open breaker, DNS failures, refused connections: the upstream is
	// unreachable either way.
	return &FetchError{Reason: FailNetwork, Err: err}
}
