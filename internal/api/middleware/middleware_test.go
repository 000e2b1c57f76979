package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/portal-server/internal/models"
	"github.com/alumnihub/portal-server/internal/services"
	"github.com/alumnihub/portal-server/internal/session"
)

// fakeAuthService implements only the Verify half the middleware needs.
type fakeAuthService struct {
	services.AuthServiceProvider
	sessions map[string]models.Session
}

func (f *fakeAuthService) Verify(_ context.Context, token string) (models.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return models.Session{}, session.ErrNotFound
	}
	return s, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestClientKey(t *testing.T) {
	h := ClientKey("app-secret")(okHandler())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "app-secret", http.StatusUnauthorized},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer app-secret", http.StatusOK},
		{"case-insensitive scheme", "bearer app-secret", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	svc := &fakeAuthService{sessions: map[string]models.Session{}}
	h := RequireAuth(svc)(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No session token")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	svc := &fakeAuthService{sessions: map[string]models.Session{}}
	h := RequireAuth(svc)(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(SessionTokenHeader, "stale")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired session")
}

func TestRequireAuthAttachesSnapshot(t *testing.T) {
	svc := &fakeAuthService{sessions: map[string]models.Session{
		"tok": {UserID: "u1", Email: "alice@x.edu", Role: "user"},
	}}

	var got models.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		got = s
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(SessionTokenHeader, "tok")
	w := httptest.NewRecorder()
	RequireAuth(svc)(inner).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@x.edu", got.Email)
}

func TestRequireModerator(t *testing.T) {
	svc := &fakeAuthService{sessions: map[string]models.Session{
		"user-tok":  {Role: "user"},
		"mod-tok":   {Role: "moderator"},
		"admin-tok": {Role: "admin"},
	}}
	h := RequireAuth(svc)(RequireModerator(okHandler()))

	cases := []struct {
		token string
		want  int
	}{
		{"user-tok", http.StatusForbidden},
		{"mod-tok", http.StatusOK},
		{"admin-tok", http.StatusOK},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(SessionTokenHeader, tc.token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, tc.want, w.Code, "token %s", tc.token)
	}
}

// Authentication failures must always win over role failures.
func TestAuthFailureReportedBeforeRoleFailure(t *testing.T) {
	svc := &fakeAuthService{sessions: map[string]models.Session{}}
	h := RequireAuth(svc)(RequireModerator(okHandler()))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/events/123", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireModeratorWithoutAuthReportsUnauthorized(t *testing.T) {
	h := RequireModerator(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(1, 2)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different IP has its own bucket.
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterPrunesIdleVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1)

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")
	require.Len(t, rl.visitors, 2)

	// Backdate one bucket past the idle timeout and force the next access
	// to run a prune pass.
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * visitorIdleTimeout)
	rl.lastPrune = time.Now().Add(-2 * visitorIdleTimeout)

	rl.allow("10.0.0.3")

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
	assert.Contains(t, rl.visitors, "10.0.0.3")
}
