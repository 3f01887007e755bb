package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/usecase"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles privileged moderation and ledger endpoints.
// Routes using it must sit behind the admin bearer-token middleware.
type AdminHandler struct {
	moderationUseCase usecase.ModerationUseCase
	ledgerUseCase     usecase.LedgerUseCase
	logger            coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	moderationUseCase usecase.ModerationUseCase,
	ledgerUseCase usecase.LedgerUseCase,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		moderationUseCase: moderationUseCase,
		ledgerUseCase:     ledgerUseCase,
		logger:            logger,
	}
}

// spotIDFromQuery extracts and validates the spot_id query parameter
func spotIDFromQuery(c *gin.Context) (uint64, bool) {
	spotID, err := strconv.ParseUint(c.Query("spot_id"), 10, 64)
	if err != nil || spotID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidInput,
			Message: "Invalid spot id",
		})
		return 0, false
	}
	return spotID, true
}

// ApproveSpot handles POST /api/admin/approve_spot: activates the spot and
// rewards its author
func (h *AdminHandler) ApproveSpot(c *gin.Context) {
	spotID, ok := spotIDFromQuery(c)
	if !ok {
		return
	}

	if err := h.moderationUseCase.Approve(c.Request.Context(), spotID); err != nil {
		if !domainerr.IsNotFoundError(err) {
			h.logger.Error("Error approving spot", map[string]any{
				"spot_id": spotID,
				"error":   err.Error(),
			})
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConfirmationResponse{OK: true, Message: "Approved"})
}

// RejectSpot handles POST /api/admin/reject_spot: deletes the spot
func (h *AdminHandler) RejectSpot(c *gin.Context) {
	spotID, ok := spotIDFromQuery(c)
	if !ok {
		return
	}

	if err := h.moderationUseCase.Reject(c.Request.Context(), spotID); err != nil {
		if !domainerr.IsNotFoundError(err) {
			h.logger.Error("Error rejecting spot", map[string]any{
				"spot_id": spotID,
				"error":   err.Error(),
			})
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConfirmationResponse{OK: true, Message: "Rejected"})
}

// AddBalance handles POST /api/admin/add_balance: credits a user's ledger
func (h *AdminHandler) AddBalance(c *gin.Context) {
	var req dto.AddBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidInput,
			Message: "Invalid request body",
		})
		return
	}

	balance, err := h.ledgerUseCase.Credit(c.Request.Context(), req.TgID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AddBalanceResponse{OK: true, Balance: balance})
}
