package feed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	baseBackoff   = 1 * time.Second
	maxBackoff    = 30 * time.Second
	backoffFactor = 2.0
	jitterFactor  = 0.5
)

// DoWithBackoff issues the request and retries transport errors and 5xx
// responses with exponential backoff and jitter. It makes at most
// maxRetries+1 attempts and respects context cancellation between them.
func DoWithBackoff(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	var lastErr error
	delay := baseBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(withJitter(delay)):
			}
			delay = nextDelay(delay)
		}

		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = fmt.Errorf("feed returned status: %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			// Client errors will not get better by retrying.
			return nil, fmt.Errorf("feed returned status: %d", resp.StatusCode)
		}
		return resp, nil
	}

	return nil, fmt.Errorf("all %d attempts failed: %v", maxRetries+1, lastErr)
}

func withJitter(delay time.Duration) time.Duration {
	jitter := time.Duration(rand.Float64() * float64(delay) * jitterFactor)
	delay += jitter
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}

func nextDelay(delay time.Duration) time.Duration {
	delay = time.Duration(float64(delay) * backoffFactor)
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}
