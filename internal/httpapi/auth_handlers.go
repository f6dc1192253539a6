package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/auth"
)

func (h *Handler) handleRegister(c *gin.Context) {
	var req auth.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	session, err := h.authn.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": session.Token, "user": session.User})
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	session, err := h.authn.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": session.Token, "user": session.User})
}

func (h *Handler) handleMe(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), id, id.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
