package handler

import (
	"net/http"

	domainerr "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/usecase"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles the caller-profile endpoint
type ProfileHandler struct {
	ledgerUseCase usecase.LedgerUseCase
	authenticator Authenticator
	logger        coreport.Logger
}

// NewProfileHandler creates a new profile handler instance
func NewProfileHandler(
	ledgerUseCase usecase.LedgerUseCase,
	authenticator Authenticator,
	logger coreport.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		ledgerUseCase: ledgerUseCase,
		authenticator: authenticator,
		logger:        logger,
	}
}

// Me handles POST /api/me: balance, free attempts and owned spot ids
func (h *ProfileHandler) Me(c *gin.Context) {
	var req dto.MeRequest
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

	profile, err := h.ledgerUseCase.GetProfile(c.Request.Context(), *identity)
	if err != nil {
		h.logger.Error("Error getting profile", map[string]any{
			"tg_id": identity.TgID,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	if profile.OwnedSpotIDs == nil {
		profile.OwnedSpotIDs = []uint64{}
	}
	c.JSON(http.StatusOK, dto.MeResponse{
		Balance:      profile.Balance,
		FreeAttempts: profile.FreeCredits,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		MySpotIDs:    profile.OwnedSpotIDs,
	})
}
