// Package httpapi exposes the REST surface over gin. Handlers bind JSON,
// call a service and translate its errors exactly once, here.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/logging"
)

// respondError maps a service error onto the uniform error body. Internal
// failures are logged with their cause and redacted on the wire.
func respondError(c *gin.Context, log *logging.Logger, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindInternal {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.ClientMessage()})
}

// respondInvalidBody handles JSON binding failures.
func respondInvalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
