package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/services/users"
)

func (h *Handler) handleListUsers(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	list, err := h.users.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleGetUser(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) handleUpdateUser(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req users.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	u, err := h.users.Update(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
