//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"table-booking/internal/handler/httperr"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoggingMiddlewareRequestID(t *testing.T) {
	logger := middleware.NewLogger(config.LogConfig{Level: "error", TimeFormat: "15:04:05"})
	r := gin.New()
	r.Use(logger.LoggingMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("caller id kept", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get("X-Request-ID"))
	})

	t.Run("garbage id replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Header().Get("X-Request-ID"))
	})
}

func TestCORSAlwaysAllowsAuthAndStreamHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin"},
	}))
	r.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	for _, h := range []string{"origin", "authorization", "content-type", "last-event-id"} {
		assert.Contains(t, allowed, h)
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler(), middleware.CustomRecovery())
	r.GET("/public", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusConflict, assert.AnError, "Time slot is already booked", map[string]string{"id": "r1"})
	})
	r.GET("/private", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})
	r.GET("/panic", func(_ *gin.Context) {
		panic("boom")
	})

	tests := []struct {
		path       string
		wantStatus int
		wantCode   string
	}{
		{path: "/public", wantStatus: http.StatusConflict, wantCode: httperr.CodeSlotConflict},
		{path: "/private", wantStatus: http.StatusInternalServerError, wantCode: httperr.CodeInternal},
		{path: "/panic", wantStatus: http.StatusInternalServerError, wantCode: httperr.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"`+tt.wantCode+`"`)
		})
	}
}
