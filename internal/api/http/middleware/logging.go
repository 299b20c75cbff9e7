package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkarpov/taskman-server/internal/logger"
)

// Logging logs each HTTP request with its method, path, status and duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs the request after the handler chain completes.
func (l *Logging) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		l.logger.Info("HTTP request completed",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"ip", c.ClientIP())
	}
}
