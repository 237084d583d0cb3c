package directions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// statusError is an ORS answer with a 4xx/5xx status. Body holds the
// provider's own error text, which ends up in the client-facing detail.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// buildRequest returns an authenticated ORS request. It is called once per
// attempt because a request body can only be read once.
func (o *ORSDirectionsProvider) buildRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build ORS request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// send performs one attempt. Error statuses are drained into a *statusError.
func (o *ORSDirectionsProvider) send(req *http.Request) (*http.Response, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return nil, &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

// sendWithRetry makes up to o.maxAttempts attempts. Only throttling, gateway
// style 5xx answers and network errors are attempted again; the wait doubles
// after each failure and is cut short by ctx.
func (o *ORSDirectionsProvider) sendWithRetry(
	ctx context.Context,
	build func() (*http.Request, error),
) (*http.Response, error) {
	wait := o.backoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := build()
		if err != nil {
			return nil, err
		}

		resp, err := o.send(req)
		if err == nil {
			return resp, nil
		}
		if attempt >= o.maxAttempts || !transient(err) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}

func transient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
