package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/metrics"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
	"github.com/Ms-You/poje-remind/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator map[string]*security.Identity

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*security.Identity, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return nil, errors.New("rejected")
}

var testAuth = stubAuthenticator{
	"user-token":  {LoginID: "alice", Authorities: []string{"ROLE_USER"}},
	"admin-token": {LoginID: "root", Authorities: []string{"ROLE_ADMIN"}},
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) http.Header {
	return http.Header{AuthorizationHeader: {"Bearer " + token}}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := serve(r, http.MethodGet, "/test", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	w = serve(r, http.MethodGet, "/test", http.Header{RequestIDHeader: {"existing-123"}})
	assert.Equal(t, "existing-123", w.Body.String())
}

func TestCORS_ListedOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORSWithConfig(DefaultCORSConfig("https://remind.dev")))
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := serve(r, http.MethodGet, "/test", http.Header{"Origin": {"https://remind.dev"}})
	assert.Equal(t, "https://remind.dev", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Authorization")

	w = serve(r, http.MethodOptions, "/test", http.Header{"Origin": {"https://remind.dev"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS_UnlistedOriginGetsNoCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORSWithConfig(DefaultCORSConfig("https://remind.dev")))
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := serve(r, http.MethodGet, "/test", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_NoOriginsConfigured(t *testing.T) {
	r := gin.New()
	r.Use(CORSWithConfig(DefaultCORSConfig()))
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := serve(r, http.MethodGet, "/test", http.Header{"Origin": {"http://example.com"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_WildcardNeverReflectsWithCredentials(t *testing.T) {
	r := gin.New()
	r.Use(CORSWithConfig(DefaultCORSConfig("*")))
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := serve(r, http.MethodGet, "/test", http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer", ""},
		{"Bearer ", ""},
		{"Basic abc", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(AuthorizationHeader, tt.header)
		assert.Equal(t, tt.want, BearerToken(c), "header %q", tt.header)
	}
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(testAuth))
	r.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, LoginID(c)) })
	r.GET("/user", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, LoginID(c)) })
	r.GET("/admin", RequireRole("ROLE_ADMIN"), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestAuthenticate_Optional(t *testing.T) {
	r := authRouter()

	w := serve(r, http.MethodGet, "/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = serve(r, http.MethodGet, "/open", bearer("garbage"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = serve(r, http.MethodGet, "/open", bearer("user-token"))
	assert.Equal(t, "alice", w.Body.String())
}

func TestRequireAuth(t *testing.T) {
	r := authRouter()

	w := serve(r, http.MethodGet, "/user", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)

	w = serve(r, http.MethodGet, "/user", bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/user", bearer("user-token"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := authRouter()

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/admin", nil).Code)

	w := serve(r, http.MethodGet, "/admin", bearer("user-token"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"FORBIDDEN"`)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin", bearer("admin-token")).Code)
}

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	r := gin.New()
	r.Use(RequestID(), Logger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/ok", nil)
	serve(r, http.MethodGet, "/bad", nil)
	serve(r, http.MethodGet, "/boom", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
	assert.Equal(t, "/bad", entries[1].ContextMap()["path"])
}

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/:id", "200")
	before := testutil.ToFloat64(counter)

	serve(r, http.MethodGet, "/things/1", nil)
	serve(r, http.MethodGet, "/things/2", nil)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
