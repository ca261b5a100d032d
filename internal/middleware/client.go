package middleware

import (
	"net"
	"net/http"

	"flavis-be/internal/utils"
)

// ClientKeyMiddleware resolves the storefront client identity that keys
// the submission guard and draft store. Browsers send a stable
// X-Client-ID; anything else falls back to the remote IP.
func ClientKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Client-ID")
		if key == "" {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key = "ip:" + ip
		}

		ctx := utils.WithClientKey(r.Context(), key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
