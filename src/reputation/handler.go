package reputation

import (
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

func (h *Handler) Get(c *gin.Context) {
	rep, err := h.Service.Get(c.Param("address"))
	if err != nil {
		rest.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
