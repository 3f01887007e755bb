package persistence

import "context"

// UnitOfWork coordinates transactional operations across the account, spot
// and access repositories so multi-step mutations stay all-or-nothing
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current
	// transaction, or to the base connection when none is active
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetSpotRepository returns a spot repository bound to the current
	// transaction, or to the base connection when none is active
	GetSpotRepository(ctx context.Context) SpotRepository

	// GetAccessRepository returns an access-memo repository bound to the
	// current transaction, or to the base connection when none is active
	GetAccessRepository(ctx context.Context) AccessRepository
}
