package config

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

// DoWithBackoff performs the request, retrying transient failures with
// exponential backoff and jitter until maxRetries attempts have failed
// or the context is done. A maxRetries of zero retries indefinitely,
// bounded only by the context. A non-2xx response is returned to the
// caller as-is; only transport errors are retried.
func DoWithBackoff(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	backoff := BASE_BACKOFF

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.WithContext(ctx))
		if err == nil {
			return resp, nil
		}

		if maxRetries > 0 && attempt >= maxRetries {
			return nil, fmt.Errorf("max retries exceeded: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(jitteredDelay(backoff)):
		}

		backoff = calculateNewBackoffDelay(backoff)
	}
}

func jitteredDelay(backoff time.Duration) time.Duration {
	jitter := time.Duration(rand.Float64() * float64(backoff) * JITTER_FACTOR)
	delay := backoff + jitter
	if delay > MAX_BACKOFF {
		delay = MAX_BACKOFF
	}
	return delay
}
