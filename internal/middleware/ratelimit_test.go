package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth/login", rl.Middleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(5, 10))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	router := limitedRouter(NewRateLimiter(1, 2))

	var lastCode int
	var lastBody string
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		router.ServeHTTP(w, req)
		lastCode = w.Code
		lastBody = w.Body.String()
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected status %d after burst exhausted, got %d", http.StatusTooManyRequests, lastCode)
	}
	if !strings.Contains(lastBody, "error") {
		t.Errorf("rejection body should use the error key, got %q", lastBody)
	}
}

func TestRateLimiter_BucketsAreScopedPerIP(t *testing.T) {
	router := limitedRouter(NewRateLimiter(1, 1))

	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("POST", "/api/auth/login", nil)
	req1.RemoteAddr = "10.0.0.1:12345"
	router.ServeHTTP(w1, req1)
	if w1.Code != http.StatusOK {
		t.Errorf("first client: expected %d, got %d", http.StatusOK, w1.Code)
	}

	// A different client keeps its own untouched burst.
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("POST", "/api/auth/login", nil)
	req2.RemoteAddr = "10.0.0.2:12345"
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Errorf("second client: expected %d, got %d", http.StatusOK, w2.Code)
	}
}

func TestRateLimiter_SeparateInstancesDoNotShareBudget(t *testing.T) {
	// Auth and OCR ingest run behind distinct limiters; draining one must
	// not affect the other.
	authRL := NewRateLimiter(1, 1)
	ingestRL := NewRateLimiter(1, 1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth/login", authRL.Middleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.POST("/api/items/1/ocr", ingestRL.Middleware(), func(c *gin.Context) {
		c.JSON(202, gin.H{"status": "queued"})
	})

	// Drain the auth budget for this IP.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.9:12345"
		router.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/items/1/ocr", nil)
	req.RemoteAddr = "10.0.0.9:12345"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("ingest should have its own budget, got %d", w.Code)
	}
}
