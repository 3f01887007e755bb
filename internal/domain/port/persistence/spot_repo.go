package persistence

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// SpotRepository defines the storage operations for spot records and their
// moderation state
type SpotRepository interface {
	// GetByID retrieves a spot regardless of activation state
	//
	// Possible errors:
	// - ErrSpotNotFound: if the spot doesn't exist
	// - ErrUnavailable: if the storage collaborator fails
	GetByID(ctx context.Context, id uint64) (*entity.Spot, error)

	// GetActive retrieves a spot only if it has passed moderation
	//
	// Possible errors:
	// - ErrSpotNotFound: if the spot doesn't exist or is inactive
	// - ErrUnavailable: if the storage collaborator fails
	GetActive(ctx context.Context, id uint64) (*entity.Spot, error)

	// Create persists a pending spot and assigns its id
	Create(ctx context.Context, spot *entity.Spot) error

	// Activate flips a spot to publicly visible
	//
	// Possible errors:
	// - ErrSpotNotFound: if the spot doesn't exist
	Activate(ctx context.Context, id uint64) error

	// Delete removes a spot entirely; rejection is destructive
	//
	// Possible errors:
	// - ErrSpotNotFound: if the spot doesn't exist
	Delete(ctx context.Context, id uint64) error

	// ListActive returns all publicly visible spots
	ListActive(ctx context.Context) ([]*entity.Spot, error)

	// ListActiveIDsByAuthor returns ids of active spots submitted by the user
	ListActiveIDsByAuthor(ctx context.Context, tgID int64) ([]uint64, error)
}
