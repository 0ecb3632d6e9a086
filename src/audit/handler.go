package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) GetLogEntries(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	entries, err := h.Service.GetLogEntries(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve log entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetLogEntriesByService(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	entries, err := h.Service.GetLogEntriesByService(c.Param("service"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve log entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetLogEntriesByLevel(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	entries, err := h.Service.GetLogEntriesByLevel(c.Param("level"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve log entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func pagination(c *gin.Context) (int, int, bool) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	if limit > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit cannot exceed 1000"})
		return 0, 0, false
	}
	return limit, offset, true
}
