package alquran

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const (
	retryMaxRetries = 3
	retryBaseDelay  = 250 * time.Millisecond
	retryMaxDelay   = 2 * time.Second
)

// get performs a GET request, retrying throttled and server-side failures.
// The body of the last response is returned together with its status code.
func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, 0, fmt.Errorf("execute request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
		}

		if !isRetryableStatus(resp.StatusCode) || attempt == retryMaxRetries {
			return body, resp.StatusCode, nil
		}

		if err := sleepWithBackoff(ctx, c.retryDelay, attempt); err != nil {
			return nil, resp.StatusCode, err
		}
	}
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sleepWithBackoff(ctx context.Context, base time.Duration, attempt int) error {
	delay := base * time.Duration(1<<attempt)
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(delay/2) + 1))
	delay = delay + jitter
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
