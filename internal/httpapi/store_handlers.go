package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/services/stores"
)

func (h *Handler) handleListStores(c *gin.Context) {
	list, err := h.stores.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleGetStore(c *gin.Context) {
	st, err := h.stores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) handleListStoresByOwner(c *gin.Context) {
	list, err := h.stores.ListByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleCreateStore(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req stores.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	st, err := h.stores.Create(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *Handler) handleUpdateStore(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req stores.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	st, err := h.stores.Update(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) handleDeleteStore(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.stores.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store deleted"})
}
