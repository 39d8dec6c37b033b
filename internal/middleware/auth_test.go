package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taru_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeActivityRepo struct {
	seen chan uint
}

func (f *fakeActivityRepo) UpdateLastSeen(userID uint) error {
	f.seen <- userID
	return nil
}

func TestActivityMiddlewareRecordsLastSeen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &fakeActivityRepo{seen: make(chan uint, 1)}
	mw := ActivityMiddleware(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("user", &util.Claims{UserID: 7})

	mw(c)

	select {
	case userID := <-repo.seen:
		assert.Equal(t, uint(7), userID)
	case <-time.After(time.Second):
		t.Fatal("last seen update never arrived")
	}
}

func TestActivityMiddlewareSkipsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &fakeActivityRepo{seen: make(chan uint, 1)}
	mw := ActivityMiddleware(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	mw(c)

	select {
	case <-repo.seen:
		t.Fatal("unexpected last seen update for anonymous request")
	case <-time.After(50 * time.Millisecond):
	}
}
