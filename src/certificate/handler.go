package certificate

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/miromero13/certeth/pkg/rest"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cert, err := h.Service.Issue(req)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cert)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certificate id"})
		return
	}

	cert, err := h.Service.Get(id)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *Handler) Revoke(c *gin.Context) {
	id, err := parseId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certificate id"})
		return
	}

	var req struct {
		CallerAddress string `json:"caller_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cert, err := h.Service.Revoke(id, req.CallerAddress)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *Handler) ListByIssuer(c *gin.Context) {
	certs, err := h.Service.ListByIssuer(c.Param("address"))
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}

func (h *Handler) ListByRecipient(c *gin.Context) {
	certs, err := h.Service.ListByRecipient(c.Param("address"))
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}

func (h *Handler) Count(c *gin.Context) {
	count, err := h.Service.Count()
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// VerifyDirect is the disclosed-opening check: the caller sends grade and
// nonce, the store recomputes the commitment.
func (h *Handler) VerifyDirect(c *gin.Context) {
	id, err := parseId(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certificate id"})
		return
	}

	var req struct {
		Grade int    `json:"grade"`
		Nonce string `json:"nonce"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	match, err := h.Service.VerifyDirect(id, req.Grade, req.Nonce)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": match})
}

func parseId(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
