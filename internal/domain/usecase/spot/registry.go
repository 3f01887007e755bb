package spot

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/notify"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/persistence"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/usecase"
)

// Registry implements the public spot surface: listing approved spots and
// accepting new submissions for moderation
type Registry struct {
	uow          persistence.UnitOfWork
	dispatcher   notify.Dispatcher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	spotPrice    int64
}

// NewRegistry creates a new spot registry
func NewRegistry(
	uow persistence.UnitOfWork,
	dispatcher notify.Dispatcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	spotPrice int64,
) *Registry {
	if spotPrice <= 0 {
		spotPrice = entity.DefaultSpotPrice
	}
	return &Registry{
		uow:          uow,
		dispatcher:   dispatcher,
		timeProvider: timeProvider,
		logger:       logger,
		spotPrice:    spotPrice,
	}
}

// ListActive returns all approved spots for the map
func (r *Registry) ListActive(ctx context.Context) ([]*entity.Spot, error) {
	return r.uow.GetSpotRepository(ctx).ListActive(ctx)
}

// Submit validates the submission, stores it pending moderation and fires a
// best-effort moderator alert. Notification failure never rolls back or
// delays the stored submission.
func (r *Registry) Submit(ctx context.Context, identity entity.Identity, input usecase.SubmitSpotInput) (*entity.Spot, error) {
	spot, err := entity.NewSpot(input.Title, input.Lat, input.Lon, input.ContentURL, input.Danger, r.spotPrice, r.timeProvider)
	if err != nil {
		return nil, err
	}

	if identity.TgID != 0 {
		authorID := identity.TgID
		spot.AuthorTgID = &authorID
	}
	spot.AuthorName = identity.DisplayName()

	if err := r.uow.GetSpotRepository(ctx).Create(ctx, spot); err != nil {
		return nil, err
	}

	r.logger.Info("Spot submitted for moderation", map[string]any{
		"spot_id": spot.ID,
		"title":   spot.Title,
		"tg_id":   identity.TgID,
	})

	r.dispatcher.Dispatch(spot)
	return spot, nil
}
