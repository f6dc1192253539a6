package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/auth"
	"github.com/souqhub/marketplace/internal/logging"
	"github.com/souqhub/marketplace/internal/metrics"
)

const identityKey = "identity"

// requireAuth resolves the bearer token and stores the caller's identity in
// the request context. Requests without a valid token stop here with 401.
func requireAuth(authn *auth.Service, log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		id, err := authn.Resolve(c.Request.Context(), token)
		if err != nil {
			respondError(c, log, err)
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// identityFrom returns the identity stored by requireAuth. It only returns
// false on routes that skipped the middleware, which is a wiring bug.
func identityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return auth.Identity{}, false
	}
	return id, true
}

// corsMiddleware answers preflight requests and marks allowed origins.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}

	allowed := func(origin string) bool {
		for _, a := range allowedOrigins {
			if a == origin {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed(origin)) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogger logs one line per handled request.
func requestLogger(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// metricsMiddleware records request counters and latency. The route pattern
// keeps label cardinality bounded; unmatched routes collapse into one label.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.IncInFlight()
		start := time.Now()
		c.Next()
		done()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
