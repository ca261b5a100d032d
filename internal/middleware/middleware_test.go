package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"flavis-be/internal/user"
	"flavis-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = utils.GetUserRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(next)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := user.GenerateJWT(1, "ADMIN", "flavis")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/pedidos", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, "ADMIN", gotRole)
	})

	t.Run("MissingTokenPassesAnonymous", func(t *testing.T) {
		gotRole = "sentinel"
		req := httptest.NewRequest(http.MethodGet, "/pedidos", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, gotRole)
	})

	t.Run("GarbageTokenPassesAnonymous", func(t *testing.T) {
		gotRole = "sentinel"
		req := httptest.NewRequest(http.MethodGet, "/pedidos", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Empty(t, gotRole)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(next)

	t.Run("AdminAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/pedidos", nil)
		ctx := utils.SetUserContext(req.Context(), 1, "flavis", "ADMIN")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("AnonymousRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/pedidos", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestClientKeyMiddleware(t *testing.T) {
	var gotKey string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = utils.ClientKeyFromContext(r.Context())
	})
	handler := ClientKeyMiddleware(next)

	t.Run("HeaderWins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/pedidos", nil)
		req.Header.Set("X-Client-ID", "browser-abc")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "browser-abc", gotKey)
	})

	t.Run("FallsBackToIP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/pedidos", nil)
		req.RemoteAddr = "10.1.2.3:51234"
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "ip:10.1.2.3", gotKey)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := RequestIDMiddleware(next)

	t.Run("GeneratesWhenAbsent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("PreservesIncoming", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(next)

	t.Run("StrictTierExhausts", func(t *testing.T) {
		var lastCode int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
			ctx := utils.WithClientKey(req.Context(), "limit-test-client")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))
			lastCode = rec.Code
		}
		assert.Equal(t, http.StatusTooManyRequests, lastCode)
	})

	t.Run("IndependentClients", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		ctx := utils.WithClientKey(req.Context(), "another-client")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
