package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/extopy/extopy-go/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(10), 20)

	if rl == nil {
		t.Fatal("NewRateLimiter returned nil")
	}

	if rl.rate != rate.Limit(10) {
		t.Errorf("Expected rate 10, got %v", rl.rate)
	}

	if rl.burst != 20 {
		t.Errorf("Expected burst 20, got %d", rl.burst)
	}

	if rl.limiters == nil {
		t.Error("Limiters map should be initialized")
	}
}

func TestGetLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(10), 20)

	// First call should create a new limiter
	limiter1 := rl.getLimiter("192.168.1.1")
	if limiter1 == nil {
		t.Fatal("getLimiter returned nil")
	}

	// Second call with same IP should return the same limiter
	limiter2 := rl.getLimiter("192.168.1.1")
	if limiter1 != limiter2 {
		t.Error("getLimiter should return the same limiter for the same IP")
	}

	// Different IP should get a different limiter
	limiter3 := rl.getLimiter("192.168.1.2")
	if limiter1 == limiter3 {
		t.Error("getLimiter should return different limiters for different IPs")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(rate.Limit(1), 3)
	g := gin.New()
	g.Use(RateLimitMiddleware(rl))
	g.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	// The burst is allowed through, the request after it is rejected
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 over the burst, got %d", w.Code)
	}
}

func newViewerTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(ViewerMiddleware(testDB(t)))
	g.GET("/whoami", func(c *gin.Context) {
		switch v := Viewer(c).(type) {
		case domain.UserContext:
			c.String(http.StatusOK, v.UserId.String())
		default:
			c.String(http.StatusOK, "anonymous")
		}
	})
	return g
}

func TestViewerMiddlewareAnonymous(t *testing.T) {
	g := newViewerTestRouter(t)

	w := doRequest(g, "GET", "/whoami", nil, "")
	if w.Body.String() != "anonymous" {
		t.Errorf("Expected anonymous viewer without header, got %s", w.Body.String())
	}
}

func TestViewerMiddlewareMalformedHeader(t *testing.T) {
	g := newViewerTestRouter(t)

	w := doRequest(g, "GET", "/whoami", nil, "not-a-uuid")
	if w.Body.String() != "anonymous" {
		t.Errorf("Expected anonymous viewer for malformed header, got %s", w.Body.String())
	}
}

func TestViewerMiddlewareUnknownUser(t *testing.T) {
	g := newViewerTestRouter(t)

	w := doRequest(g, "GET", "/whoami", nil, uuid.New().String())
	if w.Body.String() != "anonymous" {
		t.Errorf("Expected anonymous viewer for unknown user, got %s", w.Body.String())
	}
}

func TestViewerMiddlewareKnownUser(t *testing.T) {
	database := testDB(t)
	err, user := database.CreateUser("viewer-mw", "Viewer", "", false, false)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	g := newViewerTestRouter(t)

	w := doRequest(g, "GET", "/whoami", nil, user.Id.String())
	if w.Body.String() != user.Id.String() {
		t.Errorf("Expected viewer %s, got %s", user.Id, w.Body.String())
	}
}

func TestViewerWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := Viewer(c).(domain.Anonymous); !ok {
		t.Error("Expected Anonymous when no middleware ran")
	}
}
