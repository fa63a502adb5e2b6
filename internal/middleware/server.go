package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"portfolio_backend/internal/logger"
	"portfolio_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware reuses a well-formed incoming X-Request-ID, otherwise
// generates one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
			slog.Int("size_bytes", c.Writer.Size()),
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Server Error", fields...)
		} else if c.Writer.Status() >= 400 {
			log.Warn("HTTP Client Error", fields...)
		} else {
			log.Info("HTTP Request", fields...)
		}
	}
}

func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbKey := string(contextkeys.DBContextKey)
		tx, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB)

		if ok && tx != nil {
			c.Set(dbKey, tx)
		} else {
			c.Set(dbKey, db)
		}

		c.Next()
	}
}

// BaseURLMiddleware stores the scheme://host used for absolute asset URLs.
// publicURL, when set, wins over anything derived from the request. Otherwise
// a Host outside allowedHosts is replaced by the first allowed host, so
// clients cannot choose the domain asset links point to. An empty
// allowedHosts trusts every Host.
func BaseURLMiddleware(publicURL string, allowedHosts []string) gin.HandlerFunc {
	publicURL = strings.TrimRight(publicURL, "/")
	return func(c *gin.Context) {
		base := publicURL
		if base == "" {
			base = RequestBaseURL(c.Request)
			if !HostAllowed(c.Request.Host, allowedHosts) {
				logger.CtxWarn(c.Request.Context(), "Untrusted Host header", "host", c.Request.Host)
				base = schemeOf(c.Request) + "://" + fallbackHost(allowedHosts)
			}
		}
		c.Set(string(contextkeys.BaseURLContextKey), base)
		c.Next()
	}
}

// RequestBaseURL derives scheme://host from r. The scheme is https when the
// connection is TLS or a proxy reports X-Forwarded-Proto: https.
func RequestBaseURL(r *http.Request) string {
	return schemeOf(r) + "://" + r.Host
}

func schemeOf(r *http.Request) string {
	proto := strings.TrimSpace(strings.SplitN(r.Header.Get("X-Forwarded-Proto"), ",", 2)[0])
	if r.TLS != nil || strings.EqualFold(proto, "https") {
		return "https"
	}
	return "http"
}

// HostAllowed matches host (port ignored, case-insensitive) against patterns:
// an exact name, ".example.com" for the domain and its subdomains, or "*".
func HostAllowed(host string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	host = strings.ToLower(stripPort(host))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		switch {
		case p == "*":
			return true
		case strings.HasPrefix(p, "."):
			if host == p[1:] || strings.HasSuffix(host, p) {
				return true
			}
		case host == p:
			return true
		}
	}
	return false
}

func fallbackHost(patterns []string) string {
	for _, p := range patterns {
		if p = strings.TrimPrefix(strings.TrimSpace(p), "."); p != "" && p != "*" {
			return p
		}
	}
	return "localhost"
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
