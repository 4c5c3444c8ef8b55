package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func signed(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"exp":      exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protectedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/p", JWTAuth("s3cret"), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Username)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, "other", time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, "s3cret", time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"valid", "Bearer " + signed(t, "s3cret", time.Now().Add(time.Hour)), http.StatusOK},
	}
	r := protectedEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, "test", 2, time.Minute, "slow down")

	r := gin.New()
	r.GET("/x", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Contains(t, w.Body.String(), "slow down")
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimiter_PurgeDropsExpiredWindows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, "test", 1, time.Second, "")

	now := time.Now()
	ok, _ := rl.allow("10.0.0.1", now)
	assert.True(t, ok)
	ok, _ = rl.allow("10.0.0.1", now)
	assert.False(t, ok)

	assert.Equal(t, 1, rl.purge(now.Add(2*time.Second)))
	ok, _ = rl.allow("10.0.0.1", now.Add(2*time.Second))
	assert.True(t, ok)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(), ErrorHandler())
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	r.GET("/err", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
