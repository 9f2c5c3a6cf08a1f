package observability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/entrhq/notesbridge/pkg/logging"
)

// NewRouter builds the gin engine serving /metrics and /healthz.
func NewRouter(logger *logging.Logger, version string) *gin.Engine {
	RegisterMetrics()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version,
			"session": logger.SessionID(),
		})
	})
	return router
}

// NewHTTPServer wraps NewRouter in an http.Server listening on addr.
func NewHTTPServer(addr string, logger *logging.Logger, version string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(logger, version),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// RequestLogger logs one line per HTTP request.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		event := logger.Debug()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http_request")
	}
}
