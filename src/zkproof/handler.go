package zkproof

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miromero13/certeth/pkg/rest"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Generate returns the borsh envelope base64-encoded alongside the public
// statement, so callers can hand the blob to any verifier.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	proof, err := h.Service.Generate(req)
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	blob, err := proof.SerializeBorsh()
	if err != nil {
		rest.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"statement": proof.Statement,
		"proof":     base64.StdEncoding.EncodeToString(blob),
	})
}
