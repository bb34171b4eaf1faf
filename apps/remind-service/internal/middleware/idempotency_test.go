package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{data: map[string]string{}}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, s.err
}

func (s *memoryIdempotencyStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value.(string)
	return s.err
}

func (s *memoryIdempotencyStore) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = value.(string)
	return true, nil
}

func (s *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return s.err
}

func toggleRouter(store IdempotencyStore, calls *int, status int) *gin.Engine {
	r := gin.New()
	r.POST("/like", Idempotency(store, time.Hour), func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	})
	return r
}

func postWithKey(r *gin.Engine, key, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/like", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysCompletedResponse(t *testing.T) {
	calls := 0
	r := toggleRouter(newMemoryIdempotencyStore(), &calls, http.StatusOK)

	first := postWithKey(r, "k1", "{}")
	second := postWithKey(r, "k1", "{}")

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
}

func TestIdempotency_WithoutKeyAlwaysRuns(t *testing.T) {
	calls := 0
	r := toggleRouter(newMemoryIdempotencyStore(), &calls, http.StatusOK)

	postWithKey(r, "", "{}")
	postWithKey(r, "", "{}")

	assert.Equal(t, 2, calls)
}

func TestIdempotency_KeyReusedWithDifferentBody(t *testing.T) {
	calls := 0
	r := toggleRouter(newMemoryIdempotencyStore(), &calls, http.StatusOK)

	postWithKey(r, "k1", `{"a":1}`)
	w := postWithKey(r, "k1", `{"a":2}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "IDEMPOTENCY_KEY_REUSED")
	assert.Equal(t, 1, calls)
}

func TestIdempotency_KeyReusedWithDifferentQuery(t *testing.T) {
	calls := 0
	r := gin.New()
	r.POST("/portfolio", Idempotency(newMemoryIdempotencyStore(), time.Hour), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"job": c.Query("job")})
	})

	send := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Header.Set(IdempotencyKeyHeader, "k1")
		r.ServeHTTP(w, req)
		return w
	}

	first := send("/portfolio?job=Developer")
	require.Equal(t, http.StatusCreated, first.Code)

	second := send("/portfolio?job=Designer")
	assert.Equal(t, http.StatusUnprocessableEntity, second.Code)
	assert.Contains(t, second.Body.String(), "IDEMPOTENCY_KEY_REUSED")
	assert.Empty(t, second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 1, calls)
}

func TestIdempotency_OversizedBodyRejected(t *testing.T) {
	calls := 0
	r := toggleRouter(newMemoryIdempotencyStore(), &calls, http.StatusOK)

	w := postWithKey(r, "k1", strings.Repeat("x", idempotencyMaxBody+1))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	assert.Zero(t, calls)
}

func TestIdempotency_UnreadableBodyRejected(t *testing.T) {
	calls := 0
	r := toggleRouter(newMemoryIdempotencyStore(), &calls, http.StatusOK)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/like", failingReader{})
	req.Header.Set(IdempotencyKeyHeader, "k1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, calls)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestIdempotency_InProgress(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	r := toggleRouter(store, &calls, http.StatusOK)

	hashReq := httptest.NewRequest(http.MethodPost, "/like", nil)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = hashReq
	ok, err := reserve(context.Background(), store, idempotencyKeyPrefix+":k1", requestHash(c, []byte("{}")))
	require.NoError(t, err)
	require.True(t, ok)

	w := postWithKey(r, "k1", "{}")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_IN_PROGRESS")
	assert.Zero(t, calls)
}

func TestIdempotency_ServerErrorIsNotReplayed(t *testing.T) {
	calls := 0
	r := toggleRouter(newMemoryIdempotencyStore(), &calls, http.StatusInternalServerError)

	postWithKey(r, "k1", "{}")
	postWithKey(r, "k1", "{}")

	assert.Equal(t, 2, calls)
}

func TestIdempotency_StoreFailureFailsOpen(t *testing.T) {
	store := newMemoryIdempotencyStore()
	store.err = errors.New("connection refused")
	calls := 0
	r := toggleRouter(store, &calls, http.StatusOK)

	w := postWithKey(r, "k1", "{}")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotency_NilStore(t *testing.T) {
	calls := 0
	r := toggleRouter(nil, &calls, http.StatusOK)

	postWithKey(r, "k1", "{}")
	postWithKey(r, "k1", "{}")

	assert.Equal(t, 2, calls)
}

func TestIdempotency_ScopedPerMember(t *testing.T) {
	calls := 0
	store := newMemoryIdempotencyStore()
	r := gin.New()
	r.Use(Authenticate(testAuth))
	r.POST("/like", Idempotency(store, time.Hour), func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	for _, token := range []string{"user-token", "admin-token"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/like", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared")
		req.Header.Set(AuthorizationHeader, "Bearer "+token)
		r.ServeHTTP(w, req)
	}

	assert.Equal(t, 2, calls)
}
