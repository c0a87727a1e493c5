package middleware

import (
	"net/http"
	"strings"
	"time"

	"chopengine/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "internal server error"

// storeSurface reports whether the request hit the store-side API, whose
// clients read errors from {"error"} rather than {"detail"}.
func storeSurface(c *gin.Context) bool {
	p := c.Request.URL.Path
	return strings.HasPrefix(p, "/orders") || strings.HasPrefix(p, "/inventory")
}

func abortInternal(c *gin.Context) {
	if storeSurface(c) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.NewStore(internalErrorMessage))
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(internalErrorMessage))
}

// ErrorHandler turns errors attached with c.Error into a generic 500. The
// underlying error is logged, never returned.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err.Err).
			Msg("unhandled error")

		abortInternal(c)
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				abortInternal(c)
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
