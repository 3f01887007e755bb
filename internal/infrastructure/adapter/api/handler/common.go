package handler

import (
	"net/http"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	domainerr "github.com/Alex-KostPy/roofnn/internal/domain/error"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Authenticator verifies a raw request credential and yields a typed identity
type Authenticator interface {
	Authenticate(initData string) (*entity.Identity, error)
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsAuthenticationError(err):
		return http.StatusUnauthorized
	case domainerr.IsInsufficientFundsError(err):
		return http.StatusPaymentRequired
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsInvalidInputError(err):
		return http.StatusBadRequest
	case domainerr.ErrorCode(err) == domainerr.CodeInvalidAmount:
		return http.StatusBadRequest
	case domainerr.IsAccountLockedError(err):
		return http.StatusConflict
	case domainerr.IsUnavailableError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error payload for a domain error
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}
