package handler

import (
	"net/http"

	domainerr "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/usecase"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SpotHandler handles the public spot endpoints
type SpotHandler struct {
	spotUseCase   usecase.SpotUseCase
	authenticator Authenticator
	logger        coreport.Logger
}

// NewSpotHandler creates a new spot handler instance
func NewSpotHandler(
	spotUseCase usecase.SpotUseCase,
	authenticator Authenticator,
	logger coreport.Logger,
) *SpotHandler {
	return &SpotHandler{
		spotUseCase:   spotUseCase,
		authenticator: authenticator,
		logger:        logger,
	}
}

// ListSpots handles GET /api/spots: active spot summaries for the map
func (h *SpotHandler) ListSpots(c *gin.Context) {
	spots, err := h.spotUseCase.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("Error listing spots", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	out := make([]dto.SpotPublic, 0, len(spots))
	for _, s := range spots {
		out = append(out, dto.SpotPublic{
			ID:             s.ID,
			Title:          s.Title,
			Lat:            s.Lat,
			Lon:            s.Lon,
			AuthorUsername: s.AuthorName,
			Danger:         s.Danger,
		})
	}
	c.JSON(http.StatusOK, out)
}

// AddSpot handles POST /api/add_spot: stores a pending spot and alerts the moderator
func (h *SpotHandler) AddSpot(c *gin.Context) {
	var req dto.AddSpotRequest
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

	_, err = h.spotUseCase.Submit(c.Request.Context(), *identity, usecase.SubmitSpotInput{
		Title:      req.Title,
		Lat:        req.Lat,
		Lon:        req.Lon,
		ContentURL: req.TelegraphURL,
		Danger:     req.Danger,
	})
	if err != nil {
		if !domainerr.IsInvalidInputError(err) {
			h.logger.Error("Error submitting spot", map[string]any{
				"tg_id": identity.TgID,
				"error": err.Error(),
			})
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AddSpotResponse{
		Success: true,
		Message: "Spot sent for moderation. It will appear on the map once approved.",
	})
}
