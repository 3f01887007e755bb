package access

import (
	"context"

	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/persistence"
)

// Service implements the access-granting orchestration: given a verified
// user and a spot id it decides author-bypass/memoized/free/charged/denied
// and applies the outcome as a single transaction.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	queue        *GrantQueue
}

// NewService creates the access-granting service with its per-user queue
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	s := &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
	s.queue = NewGrantQueue(logger, s.processGrant)
	return s
}

// RequestAccess resolves a grant-or-deny decision for the (user, spot) pair.
// Requests for the same user are processed strictly one at a time.
func (s *Service) RequestAccess(ctx context.Context, tgID int64, spotID uint64) (string, error) {
	if tgID == 0 {
		return "", errs.ErrAuthenticationFailed
	}
	return s.queue.Enqueue(ctx, tgID, spotID)
}

// Shutdown drains the per-user grant queues
func (s *Service) Shutdown() {
	s.queue.Shutdown()
}

// processGrant runs the whole decision sequence inside one unit-of-work
// transaction. Any failure leaves ledger, registry and memo state unchanged.
func (s *Service) processGrant(ctx context.Context, tgID int64, spotID uint64) (string, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	spots := s.uow.GetSpotRepository(txCtx)
	memos := s.uow.GetAccessRepository(txCtx)
	accounts := s.uow.GetAccountRepository(txCtx)

	spot, err := spots.GetActive(txCtx, spotID)
	if err != nil {
		return "", err
	}

	// Authors never pay; this check runs before any charge logic and
	// short-circuits it. The grant below is idempotent.
	if spot.IsAuthoredBy(tgID) {
		if err := memos.Grant(txCtx, tgID, spotID); err != nil {
			return "", err
		}
		if err := s.uow.Commit(txCtx); err != nil {
			return "", err
		}
		committed = true
		s.logger.Debug("Author viewed own spot", map[string]any{
			"tg_id":   tgID,
			"spot_id": spotID,
		})
		return spot.ContentURL, nil
	}

	// Previously-paid access is free forever; no ledger interaction.
	granted, err := memos.Has(txCtx, tgID, spotID)
	if err != nil {
		return "", err
	}
	if granted {
		if err := s.uow.Commit(txCtx); err != nil {
			return "", err
		}
		committed = true
		return spot.ContentURL, nil
	}

	// Lock the account row for the rest of the transaction so a concurrent
	// request for the same user cannot double-charge.
	account, err := accounts.GetOrCreateForUpdate(txCtx, tgID)
	if err != nil {
		return "", err
	}

	account.ApplyWeeklyRefill(s.timeProvider.Now())

	// Free credits are always consumed before balance; deliberate policy.
	var charged string
	switch {
	case account.DebitFreeCredit(s.timeProvider):
		charged = "free_credit"
	case account.DebitBalance(spot.Price, s.timeProvider):
		charged = "balance"
	default:
		return "", errs.NewInsufficientFundsError(tgID, spot.Price, account.Balance(), account.FreeCredits())
	}

	if err := accounts.Update(txCtx, account); err != nil {
		return "", err
	}
	if err := memos.Grant(txCtx, tgID, spotID); err != nil {
		return "", err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return "", err
	}
	committed = true

	s.logger.Info("Access granted", map[string]any{
		"tg_id":        tgID,
		"spot_id":      spotID,
		"charged_via":  charged,
		"price":        spot.Price,
		"balance":      account.Balance(),
		"free_credits": account.FreeCredits(),
	})
	return spot.ContentURL, nil
}
