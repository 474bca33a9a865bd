package middleware

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go/http"
)

// SentryMiddleware wraps the API router so panics and request errors are
// captured with request context before the response is written. Repanic
// keeps the server's own recovery behavior intact.
func SentryMiddleware(next http.Handler) http.Handler {
	sentryHandler := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
		Timeout:         2 * time.Second,
	})

	return sentryHandler.Handle(next)
}
