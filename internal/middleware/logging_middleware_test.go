package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/woodcrrests/scratchcard_api/internal/middleware"
)

func loggingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, c.GetString("request_id"))
	})
	return router
}

func TestLoggingMiddlewareReusesCallerRequestID(t *testing.T) {
	router := loggingRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "panel-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "panel-42" {
		t.Fatalf("expected context request_id panel-42, got %q", got)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "panel-42" {
		t.Fatalf("expected echoed header panel-42, got %q", got)
	}
}

func TestLoggingMiddlewareGeneratesRequestID(t *testing.T) {
	router := loggingRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	id := rec.Body.String()
	if len(id) != 8 {
		t.Fatalf("expected a generated 8-char id, got %q", id)
	}
	if rec.Header().Get("X-Request-Id") != id {
		t.Fatal("response header should carry the generated id")
	}
}
