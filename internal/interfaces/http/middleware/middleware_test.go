package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantdesk/helpdesk/internal/domain/access"
	vo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/ratelimit"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authenticatorFunc func(ctx context.Context, token string) (access.Caller, error)

func (f authenticatorFunc) Execute(ctx context.Context, token string) (access.Caller, error) {
	return f(ctx, token)
}

var customer = access.Caller{UserID: 2, UserSID: "usr_u1", Role: vo.RoleCustomer}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		caller, _ := GetCaller(c)
		c.String(http.StatusOK, caller.UserSID)
	})
	r.GET("/probe", handlers...)
	return r
}

func do(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	auth := NewAuthMiddleware(authenticatorFunc(func(_ context.Context, token string) (access.Caller, error) {
		switch token {
		case "good":
			return customer, nil
		case "inactive":
			return access.Caller{}, errors.NewAccountInactiveError()
		default:
			return access.Caller{}, errors.NewTokenInvalidError("bad token")
		}
	}), logger.NewNopLogger())
	r := newEngine(auth.RequireAuth())

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"inactive account", "Bearer inactive", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := do(r, headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "usr_u1", w.Body.String())
			}
		})
	}
}

func TestRequirePrivileged(t *testing.T) {
	as := func(caller access.Caller) gin.HandlerFunc {
		return func(c *gin.Context) { SetCaller(c, caller) }
	}

	w := do(newEngine(as(customer), RequirePrivileged()), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	staff := access.Caller{UserSID: "usr_ops", Role: vo.RoleStaff, IsStaff: true}
	w = do(newEngine(as(staff), RequirePrivileged()), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(newEngine(RequirePrivileged()), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), "login", ratelimit.Rule{Limit: 2, Window: time.Minute}, logger.NewNopLogger())
	r := newEngine(rl.Limit())

	assert.Equal(t, http.StatusOK, do(r, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, nil).Code)

	t.Run("reports remaining budget", func(t *testing.T) {
		other := newEngine(NewRateLimiter(ratelimit.NewRedisRateLimiter(client), "api", ratelimit.Rule{Limit: 5, Window: time.Minute}, logger.NewNopLogger()).Limit())
		w := do(other, nil)
		assert.Equal(t, "5", w.Header().Get(headerRateLimitLimit))
		assert.Equal(t, "4", w.Header().Get(headerRateLimitRemaining))
	})

	t.Run("limited response carries Retry-After", func(t *testing.T) {
		w := do(r, nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("fails open without redis", func(t *testing.T) {
		mr.Close()
		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	})
}

func TestRateLimiter_ResetOnSuccess(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), "login", ratelimit.Rule{Limit: 1, Window: time.Minute}, logger.NewNopLogger()).ResetOnSuccess()
	r := newEngine(rl.Limit())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	}
}

func TestLogger_AssignsRequestID(t *testing.T) {
	r := newEngine(Logger(logger.NewNopLogger()))

	w := do(r, nil)
	assert.Len(t, w.Header().Get("X-Request-ID"), requestIDLength)

	w = do(r, map[string]string{"X-Request-ID": "req-42"})
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"https://desk.acme.io"}))

	w := do(r, map[string]string{"Origin": "https://desk.acme.io"})
	assert.Equal(t, "https://desk.acme.io", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	wildcard := newEngine(CORS([]string{"*"}))
	w = do(wildcard, map[string]string{"Origin": "https://any.example"})
	assert.Equal(t, "https://any.example", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/probe", nil)
	req.Header.Set("Origin", "https://desk.acme.io")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	pre := httptest.NewRecorder()
	e := gin.New()
	e.Use(CORS([]string{"https://desk.acme.io/"}))
	e.ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)
	assert.Contains(t, pre.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	assert.Equal(t, "https://desk.acme.io", pre.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery(logger.NewNopLogger()), func(*gin.Context) { panic("boom") })
	w := do(r, map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
