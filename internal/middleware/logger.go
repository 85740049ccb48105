package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs each HTTP request with its matched route, the session it
// touched, status and latency. Unmatched requests log the raw path.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		requestID, _ := c.Get("request_id")
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		line := fmt.Sprintf("[%s] %s %s %d %s", requestID, c.Request.Method, route, c.Writer.Status(), latency)
		if session := c.Param("id"); session != "" {
			line += " session=" + session
		}
		if len(c.Errors) > 0 {
			line += " errors=" + c.Errors.String()
		}
		log.Print(line)
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
