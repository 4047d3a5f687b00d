package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"tennis-academy-api/internal/model"
)

type stubValidator struct {
	claims *model.AuthClaims
	err    error
	seen   string
}

func (s *stubValidator) ValidateAccessToken(token string) (*model.AuthClaims, error) {
	s.seen = token
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	const userID = "3c1b9d0e-0000-4000-8000-000000000042"

	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		v := &stubValidator{claims: &model.AuthClaims{UserID: userID, Type: "access"}}
		protected := NewAuthMiddleware(v).RequireAuth(okHandler(t, userID))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok-123")
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "tok-123", v.seen)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		v := &stubValidator{claims: &model.AuthClaims{UserID: userID, Type: "access"}}
		protected := NewAuthMiddleware(v).RequireAuth(okHandler(t, userID))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer tok-123")
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		protected := NewAuthMiddleware(&stubValidator{}).RequireAuth(okHandler(t, userID))

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.False(t, body.Success)
		require.Equal(t, "UNAUTHORIZED", body.Error.Code)
	})

	t.Run("non bearer scheme is 401", func(t *testing.T) {
		protected := NewAuthMiddleware(&stubValidator{}).RequireAuth(okHandler(t, userID))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token is 401", func(t *testing.T) {
		v := &stubValidator{err: model.ErrInvalidToken}
		protected := NewAuthMiddleware(v).RequireAuth(okHandler(t, userID))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserIDFromContextMissing(t *testing.T) {
	t.Parallel()

	_, ok := UserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.False(t, ok)
}
