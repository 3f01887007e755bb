package usecase

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// Profile is the caller-facing view of an account
type Profile struct {
	Balance      int64
	FreeCredits  int
	Username     string
	FirstName    string
	OwnedSpotIDs []uint64
}

// LedgerUseCase owns account balances and free-credit state
type LedgerUseCase interface {
	// GetProfile resolves (or lazily creates) the caller's account, applies
	// the weekly refill, refreshes display metadata and returns the profile
	// together with the caller's active spot ids
	GetProfile(ctx context.Context, identity entity.Identity) (*Profile, error)

	// Credit tops up a user's balance by a bounded positive amount and
	// returns the new balance. Creates the account if absent.
	//
	// Possible errors:
	// - ErrInvalidAmount: amount non-positive or over the allowed limit
	Credit(ctx context.Context, tgID int64, amount int64) (int64, error)
}
