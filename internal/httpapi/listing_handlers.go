package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqhub/marketplace/internal/services/listings"
)

func (h *Handler) handleListJobs(c *gin.Context) {
	list, err := h.listings.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleGetJob(c *gin.Context) {
	j, err := h.listings.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *Handler) handleListJobsByStore(c *gin.Context) {
	list, err := h.listings.ListJobsByStore(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleCreateJob(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req listings.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	j, err := h.listings.CreateJob(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *Handler) handleUpdateJob(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req listings.JobUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	j, err := h.listings.UpdateJob(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *Handler) handleDeleteJob(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.listings.DeleteJob(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}

func (h *Handler) handleListAnnouncements(c *gin.Context) {
	list, err := h.listings.ListAnnouncements(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleGetAnnouncement(c *gin.Context) {
	a, err := h.listings.GetAnnouncement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) handleListAnnouncementsByStore(c *gin.Context) {
	list, err := h.listings.ListAnnouncementsByStore(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleCreateAnnouncement(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req listings.AnnouncementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	a, err := h.listings.CreateAnnouncement(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) handleUpdateAnnouncement(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	var req listings.AnnouncementUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c)
		return
	}

	a, err := h.listings.UpdateAnnouncement(c.Request.Context(), id, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) handleDeleteAnnouncement(c *gin.Context) {
	id, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.listings.DeleteAnnouncement(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "announcement deleted"})
}
