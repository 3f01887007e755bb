package handler

import (
	"net/http"

	domainerr "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/usecase"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AccessHandler handles tutorial unlock requests
type AccessHandler struct {
	accessUseCase usecase.AccessUseCase
	authenticator Authenticator
	logger        coreport.Logger
}

// NewAccessHandler creates a new access handler instance
func NewAccessHandler(
	accessUseCase usecase.AccessUseCase,
	authenticator Authenticator,
	logger coreport.Logger,
) *AccessHandler {
	return &AccessHandler{
		accessUseCase: accessUseCase,
		authenticator: authenticator,
		logger:        logger,
	}
}

// BuySpot handles POST /api/buy_spot: grants access to a spot's tutorial,
// charging a free credit or the balance on first unlock
func (h *AccessHandler) BuySpot(c *gin.Context) {
	var req dto.BuySpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidInput,
			Message: "Invalid request body",
		})
		return
	}

	identity, err := h.authenticator.Authenticate(req.InitData)
	if err != nil {
		respondError(c, err)
		return
	}

	contentURL, err := h.accessUseCase.RequestAccess(c.Request.Context(), identity.TgID, req.SpotID)
	if err != nil {
		if !domainerr.IsNotFoundError(err) && !domainerr.IsInsufficientFundsError(err) {
			h.logger.Error("Error granting access", map[string]any{
				"tg_id":   identity.TgID,
				"spot_id": req.SpotID,
				"error":   err.Error(),
			})
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BuySpotResponse{
		Success:      true,
		TelegraphURL: contentURL,
	})
}
