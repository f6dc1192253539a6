package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/services/catalog"
)

func (h *Handler) handleListProducts(c *gin.Context) {
	list, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleGetProduct(c *gin.Context) {
	p, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) handleListProductsByStore(c *gin.Context) {
	list, err := h.catalog.ListProductsByStore(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleCreateProduct(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req catalog.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) handleUpdateProduct(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req catalog.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) handleDeleteProduct(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) handleListServices(c *gin.Context) {
	list, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleGetService(c *gin.Context) {
	svc, err := h.catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) handleListServicesByStore(c *gin.Context) {
	list, err := h.catalog.ListServicesByStore(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleCreateService(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req catalog.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	svc, err := h.catalog.CreateService(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *Handler) handleUpdateService(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req catalog.ServiceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	svc, err := h.catalog.UpdateService(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) handleDeleteService(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteService(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
