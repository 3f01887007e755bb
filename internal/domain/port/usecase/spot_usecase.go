package usecase

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// SubmitSpotInput carries validated-later submission fields
type SubmitSpotInput struct {
	Title      string
	Lat        float64
	Lon        float64
	ContentURL string
	Danger     string
}

// SpotUseCase covers the public spot registry surface
type SpotUseCase interface {
	// ListActive returns all approved spots for the map
	ListActive(ctx context.Context) ([]*entity.Spot, error)

	// Submit validates the fields, stores a pending spot and dispatches a
	// fire-and-forget moderation alert
	//
	// Possible errors:
	// - ErrInvalidInput: malformed title or tutorial link
	Submit(ctx context.Context, identity entity.Identity, input SubmitSpotInput) (*entity.Spot, error)
}

// ModerationUseCase is the privileged approve/reject gate
type ModerationUseCase interface {
	// Approve activates the spot and credits its author the fixed reward,
	// atomically. Spots without an author are only activated.
	//
	// Possible errors:
	// - ErrSpotNotFound: spot absent
	Approve(ctx context.Context, spotID uint64) error

	// Reject deletes the spot entirely; no audit trail is kept
	//
	// Possible errors:
	// - ErrSpotNotFound: spot absent
	Reject(ctx context.Context, spotID uint64) error
}
