package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/pkg/logger"
	"github.com/Ms-You/poje-remind/pkg/response"
)

const (
	// IdempotencyKeyHeader lets a client replay a non-idempotent request safely
	IdempotencyKeyHeader = "Idempotency-Key"

	idempotencyKeyPrefix  = "remind:idempotency:"
	idempotencyProcessing = 30 * time.Second
	idempotencyMaxBody    = 1 << 20
)

// IdempotencyStore is the key/value subset of pkg/redis.Client the middleware uses
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

type idempotencyRecord struct {
	Done        bool   `json:"done"`
	RequestHash string `json:"request_hash"`
	Status      int    `json:"status,omitempty"`
	Body        string `json:"body,omitempty"`
}

// Idempotency replays the stored response when a request repeats its
// Idempotency-Key. Requests without the header, or with a nil store, pass
// through untouched. Store failures fail open.
func Idempotency(store IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, idempotencyMaxBody))
			if err != nil {
				response.Abort(c, http.StatusBadRequest, "BAD_REQUEST", "잘못된 요청입니다.")
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		ctx := c.Request.Context()
		redisKey := idempotencyKeyPrefix + LoginID(c) + ":" + key
		hash := requestHash(c, body)

		reserved, err := reserve(ctx, store, redisKey, hash)
		if err != nil {
			logger.Get().Warn("idempotency store unavailable",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !reserved {
			replay(ctx, c, store, redisKey, hash)
			return
		}

		rw := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rw
		c.Next()

		status := rw.Status()
		if status >= http.StatusInternalServerError {
			// failures are not replayed
			_ = store.Del(ctx, redisKey)
			return
		}

		data, _ := json.Marshal(idempotencyRecord{Done: true, RequestHash: hash, Status: status, Body: rw.body.String()})
		if err := store.Set(ctx, redisKey, string(data), ttl); err != nil {
			logger.Get().Warn("failed to save idempotent response",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
		}
	}
}

func reserve(ctx context.Context, store IdempotencyStore, key, hash string) (bool, error) {
	data, _ := json.Marshal(idempotencyRecord{RequestHash: hash})
	return store.SetNX(ctx, key, string(data), idempotencyProcessing)
}

func replay(ctx context.Context, c *gin.Context, store IdempotencyStore, key, hash string) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		response.Abort(c, http.StatusConflict, "REQUEST_IN_PROGRESS", "이미 처리 중인 요청입니다.")
		return
	}

	var record idempotencyRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		response.Abort(c, http.StatusConflict, "REQUEST_IN_PROGRESS", "이미 처리 중인 요청입니다.")
		return
	}
	if record.RequestHash != hash {
		response.Abort(c, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED", "다른 요청에 사용된 멱등성 키입니다.")
		return
	}
	if !record.Done {
		response.Abort(c, http.StatusConflict, "REQUEST_IN_PROGRESS", "이미 처리 중인 요청입니다.")
		return
	}

	c.Header("Idempotent-Replayed", "true")
	c.Data(record.Status, "application/json; charset=utf-8", []byte(record.Body))
	c.Abort()
}

func requestHash(c *gin.Context, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.RequestURI()))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
