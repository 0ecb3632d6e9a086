package verification

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/miromero13/certeth/pkg/rest"
	"github.com/miromero13/certeth/src/model"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) VerifyProof(c *gin.Context) {
	var req struct {
		Proof    string `json:"proof"`
		Level    int    `json:"level"`
		Verifier string `json:"verifier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	blob, err := base64.StdEncoding.DecodeString(req.Proof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Proof must be base64"})
		return
	}

	record, err := h.Service.VerifyProof(blob, model.VerificationLevel(req.Level), req.Verifier)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// VerifyCertificate appends a direct verification of the stored record.
func (h *Handler) VerifyCertificate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certificate id"})
		return
	}

	var req struct {
		Level    int    `json:"level"`
		Verifier string `json:"verifier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record, err := h.Service.VerifyCertificate(uint(id), model.VerificationLevel(req.Level), req.Verifier)
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) Get(c *gin.Context) {
	record, err := h.Service.Get(c.Param("id"))
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid certificate id"})
		return
	}

	records, err := h.Service.History(uint(id))
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verifications": records})
}

func (h *Handler) ByVerifier(c *gin.Context) {
	records, err := h.Service.ByVerifier(c.Param("address"))
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verifications": records})
}
