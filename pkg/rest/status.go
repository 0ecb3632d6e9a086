package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
)

// StatusFor maps a reason code from the error chain to an HTTP status.
func StatusFor(err error) int {
	switch reasoncodes.CodeOf(err) {
	case reasoncodes.ErrValidation, reasoncodes.ErrMalformedProof, reasoncodes.ErrUnmarshal:
		return http.StatusBadRequest
	case reasoncodes.ErrUnauthorized:
		return http.StatusForbidden
	case reasoncodes.ErrNotFound:
		return http.StatusNotFound
	case reasoncodes.ErrAlreadyRevoked, reasoncodes.ErrDuplicateAttestation:
		return http.StatusConflict
	case reasoncodes.ErrCommitmentMismatch, reasoncodes.ErrInvalidProof, reasoncodes.ErrProofExpired:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the canonical error body: the reason code plus a message.
func RespondError(c *gin.Context, err error) {
	code := reasoncodes.CodeOf(err)
	if code == "" {
		code = "InternalError"
	}
	c.JSON(StatusFor(err), gin.H{"code": string(code), "error": err.Error()})
}
