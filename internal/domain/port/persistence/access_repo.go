package persistence

import "context"

// AccessRepository records which user has already unlocked which spot.
// Memos are written exactly once per pair and never mutated or deleted.
type AccessRepository interface {
	// Has reports whether a memo exists for the (user, spot) pair
	Has(ctx context.Context, tgID int64, spotID uint64) (bool, error)

	// Grant inserts a memo if absent. Granting an already-granted pair is a
	// no-op; it must never error or duplicate.
	Grant(ctx context.Context, tgID int64, spotID uint64) error
}
