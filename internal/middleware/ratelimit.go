package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
)

// RateLimit limits each client IP to requests per window on each endpoint.
// onLimit writes the rejection; requests <= 0 disables the limit.
func RateLimit(requests int, window time.Duration, onLimit gin.HandlerFunc) gin.HandlerFunc {
	if requests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	// the limit handler writes nothing so onLimit can answer in gin's terms
	limiter := httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		httprate.WithLimitHandler(func(http.ResponseWriter, *http.Request) {}),
	)

	return func(c *gin.Context) {
		passed := false
		limiter(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			onLimit(c)
			c.Abort()
		}
	}
}
