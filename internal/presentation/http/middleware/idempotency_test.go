package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := r.keys[key+"|"+userID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (r *fakeIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key+"|"+ikey.UserID.String()] = ikey
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func idempotencyRouter(repo *fakeIdempotencyRepo, userID uuid.UUID, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})

	guard := IdempotencyRequired(IdempotencyConfig{Repo: repo})
	router.POST("/issue", guard, func(c *gin.Context) {
		*hits++
		c.JSON(200, gin.H{"success": true})
	})
	router.POST("/other", guard, func(c *gin.Context) {
		*hits++
		c.JSON(200, gin.H{"success": true})
	})
	return router
}

func postWithKey(router *gin.Engine, path, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	hits := 0
	router := idempotencyRouter(newFakeIdempotencyRepo(), uuid.New(), &hits)

	w := postWithKey(router, "/issue", "")

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, 0, hits)
}

func TestIdempotencyRequiredReplaysCachedResponse(t *testing.T) {
	hits := 0
	router := idempotencyRouter(newFakeIdempotencyRepo(), uuid.New(), &hits)

	first := postWithKey(router, "/issue", "run-1")
	require.Equal(t, 200, first.Code)
	require.Equal(t, 1, hits)

	second := postWithKey(router, "/issue", "run-1")

	assert.Equal(t, 200, second.Code)
	assert.Equal(t, 1, hits, "replay must not reach the handler")
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyKeyBoundToEndpoint(t *testing.T) {
	hits := 0
	router := idempotencyRouter(newFakeIdempotencyRepo(), uuid.New(), &hits)

	first := postWithKey(router, "/issue", "run-1")
	require.Equal(t, 200, first.Code)

	reused := postWithKey(router, "/other", "run-1")

	assert.Equal(t, 422, reused.Code)
	assert.Equal(t, 1, hits, "a key reused across endpoints must not replay or execute")
}

func TestIdempotencyKeyScopedPerUser(t *testing.T) {
	repo := newFakeIdempotencyRepo()

	hitsA := 0
	routerA := idempotencyRouter(repo, uuid.New(), &hitsA)
	require.Equal(t, 200, postWithKey(routerA, "/issue", "run-1").Code)

	hitsB := 0
	routerB := idempotencyRouter(repo, uuid.New(), &hitsB)
	w := postWithKey(routerB, "/issue", "run-1")

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, 1, hitsB, "another user's key must not replay")
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyExpiredKeyIsNotReplayed(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userID := uuid.New()
	repo.keys["run-1|"+userID.String()] = &entity.IdempotencyKey{
		Key:          "run-1",
		UserID:       userID,
		Endpoint:     "POST /issue",
		ResponseCode: 200,
		ResponseBody: `{"stale":true}`,
		ExpiresAt:    time.Now().Add(-time.Hour),
	}

	hits := 0
	router := idempotencyRouter(repo, userID, &hits)
	w := postWithKey(router, "/issue", "run-1")

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, 1, hits)
	assert.NotContains(t, w.Body.String(), "stale")
}
