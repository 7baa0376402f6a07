package security

import (
	"net/http"

	"github.com/hookedbylulu/storefront-api/internal/common"
)

// BodyLimit caps request payloads. Storefront bodies are small, so anything
// past Max bytes is rejected up front with 413 in the API error envelope.
type BodyLimit struct {
	Max int64
}

// Middleware rejects requests whose body exceeds the configured limit.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", nil)
			return
		}
		// MaxBytesReader surfaces the overflow as a decode error in the
		// handler; downstream JSON decoding turns that into a 400.
		r.Body = http.MaxBytesReader(w, r.Body, b.Max)
		next.ServeHTTP(w, r)
	})
}
