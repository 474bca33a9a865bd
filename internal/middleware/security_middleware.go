package middleware

import "net/http"


// SecurityHeaders adds a standard set of security headers to every
// response. The API serves JSON and Prometheus text, but responses can
// still end up in a browser (the catalog endpoints are easy to open by
// hand), so MIME sniffing, caching, and cross-origin embedding are all
// disabled.
//
// Cache-Control and Pragma also keep intermediaries from serving a stale
// catalog: viewport updates return the freshly rebuilt one and the client
// must see it.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}
