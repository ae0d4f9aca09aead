package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/auth", ok, IsLoggedIn(testSecret))
	e.GET("/admin", ok, IsLoggedIn(testSecret), RequireAdmin)

	return e
}

func bearer(t *testing.T, role string, secret string) string {
	t.Helper()

	token, err := utils.CreateJWTToken(utils.TokenUser{ID: "64b000000000000000000001", Username: "u", Email: "u@example.com", Role: role}, secret)
	require.NoError(t, err)

	return "Bearer " + token
}

func TestAccessGate(t *testing.T) {
	e := newTestServer(t)

	testCases := []struct {
		name           string
		path           string
		authorization  string
		expectedStatus int
		expectedBody   string
	}{
		{name: "missing token", path: "/auth", expectedStatus: http.StatusUnauthorized, expectedBody: "Access token required"},
		{name: "garbage token", path: "/auth", authorization: "Bearer nope", expectedStatus: http.StatusUnauthorized, expectedBody: "Invalid or expired token"},
		{name: "wrong secret", path: "/auth", authorization: bearer(t, domain.RoleUser, "other"), expectedStatus: http.StatusUnauthorized},
		{name: "user token", path: "/auth", authorization: bearer(t, domain.RoleUser, testSecret), expectedStatus: http.StatusOK},
		{name: "user on admin route", path: "/admin", authorization: bearer(t, domain.RoleUser, testSecret), expectedStatus: http.StatusForbidden, expectedBody: "Admin access required"},
		{name: "admin on admin route", path: "/admin", authorization: bearer(t, domain.RoleAdmin, testSecret), expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.authorization != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.authorization)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, PerMinute(ctx, 2).Middleware)

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestLogger_SetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(Logger)
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}
