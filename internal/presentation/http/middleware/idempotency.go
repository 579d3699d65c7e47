package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Keys are scoped per user; the middleware only runs behind auth.
func idempotencyUser(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// Replaying a cached issuance onto a payment endpoint (or vice versa) would
// hand the client a response for a different operation, so a key is bound to
// the endpoint that first used it.
func replayCached(c *gin.Context, existing *entity.IdempotencyKey, endpoint string) bool {
	if existing == nil || existing.IsExpired() {
		return false
	}
	if existing.Endpoint != endpoint {
		c.JSON(422, gin.H{
			"success": false,
			"message": "Idempotency-Key was already used for a different endpoint",
		})
		c.Abort()
		return true
	}
	c.Header("X-Idempotency-Replayed", "true")
	c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
	c.Abort()
	return true
}

func storeResponse(c *gin.Context, config IdempotencyConfig, key string, userID uuid.UUID, endpoint, body string) {
	ikey := &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     endpoint,
		ResponseCode: c.Writer.Status(),
		ResponseBody: body,
		ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
	}
	_ = config.Repo.Create(c.Request.Context(), ikey)
}

// Idempotency caches responses for requests that carry an Idempotency-Key
// header. Payment endpoints use it: receipt numbers are unique on their own,
// but a key shields auto-generated receipts from client retries. Requests
// without the header pass through untouched.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, ok := idempotencyUser(c)
		if !ok {
			c.Next()
			return
		}

		endpoint := c.Request.Method + " " + c.FullPath()
		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			// The cache is an optimization; a lookup failure never blocks
			// the request itself.
			c.Next()
			return
		}
		if replayCached(c, existing, endpoint) {
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		storeResponse(c, config, key, userID, endpoint, blw.body.String())
	}
}

// IdempotencyRequired refuses POSTs without an Idempotency-Key header.
// Issuance endpoints use it: a whole-school fan-out retried blind is the
// exact double-billing scenario the key exists to prevent. Only successful
// responses are cached, so a failed run can be retried with the same key.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.JSON(400, gin.H{
				"success": false,
				"message": "Idempotency-Key header is required for this request",
			})
			c.Abort()
			return
		}

		userID, ok := idempotencyUser(c)
		if !ok {
			c.JSON(401, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			c.Abort()
			return
		}

		endpoint := c.Request.Method + " " + c.FullPath()
		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			c.JSON(500, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			c.Abort()
			return
		}
		if replayCached(c, existing, endpoint) {
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			storeResponse(c, config, key, userID, endpoint, blw.body.String())
		}
	}
}
