package usecase

import "context"

// AccessUseCase is the access-granting orchestrator: given a verified user
// and a spot it decides free/grant/charge/deny as one atomic unit
type AccessUseCase interface {
	// RequestAccess returns the spot's protected content URL on grant.
	//
	// Possible errors:
	// - ErrSpotNotFound: spot absent or not yet approved
	// - ErrInsufficientFunds: free credits and balance both exhausted
	// - ErrUnavailable: storage failure; safe to retry
	RequestAccess(ctx context.Context, tgID int64, spotID uint64) (string, error)

	// Shutdown drains per-user grant queues; called on server stop
	Shutdown()
}
