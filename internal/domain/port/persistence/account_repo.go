package persistence

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
)

// AccountRepository defines the storage operations for user ledger accounts.
// Accounts are created lazily on first interaction and never deleted.
type AccountRepository interface {
	// GetByTgID retrieves an account by Telegram user id
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account exists for the id
	// - ErrUnavailable: if the storage collaborator fails
	GetByTgID(ctx context.Context, tgID int64) (*entity.Account, error)

	// GetOrCreateForUpdate returns the account for tgID, creating it with
	// signup defaults if absent, holding an exclusive row lock for the rest
	// of the surrounding transaction. This is the entry point for every
	// ledger mutation; it must be called inside a unit-of-work transaction
	// so concurrent requests for the same user serialize on the row.
	//
	// Possible errors:
	// - ErrAccountLocked: if the row lock cannot be obtained
	// - ErrUnavailable: if the storage collaborator fails
	GetOrCreateForUpdate(ctx context.Context, tgID int64) (*entity.Account, error)

	// Create persists a new account
	//
	// Possible errors:
	// - ErrDuplicateAccount: if an account with the same tg id exists
	// - ErrUnavailable: if the storage collaborator fails
	Create(ctx context.Context, account *entity.Account) error

	// Update persists account mutations (balance, free credits, refill
	// timestamp, display metadata)
	//
	// Possible errors:
	// - ErrAccountNotFound: if the account vanished
	// - ErrUnavailable: if the storage collaborator fails
	Update(ctx context.Context, account *entity.Account) error
}
