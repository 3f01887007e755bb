package ledger

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/persistence"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/usecase"
)

// Service implements the account ledger use case
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new ledger service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetProfile resolves the caller's account, applying the weekly refill and
// refreshing display metadata on the way. The account is created lazily on
// first contact, which itself counts as a refill event.
func (s *Service) GetProfile(ctx context.Context, identity entity.Identity) (*usecase.Profile, error) {
	if identity.TgID == 0 {
		return nil, errs.ErrAuthenticationFailed
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	accounts := s.uow.GetAccountRepository(txCtx)
	account, err := accounts.GetOrCreateForUpdate(txCtx, identity.TgID)
	if err != nil {
		return nil, err
	}

	touched := account.TouchIdentity(identity.Username, identity.FirstName, s.timeProvider)
	refilled := account.ApplyWeeklyRefill(s.timeProvider.Now())
	if touched || refilled {
		if err := accounts.Update(txCtx, account); err != nil {
			return nil, err
		}
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}
	committed = true

	if refilled {
		s.logger.Info("Weekly free credits refilled", map[string]any{
			"tg_id":        account.TgID,
			"free_credits": account.FreeCredits(),
		})
	}

	ownedIDs, err := s.uow.GetSpotRepository(ctx).ListActiveIDsByAuthor(ctx, identity.TgID)
	if err != nil {
		return nil, err
	}

	return &usecase.Profile{
		Balance:      account.Balance(),
		FreeCredits:  account.FreeCredits(),
		Username:     account.Username,
		FirstName:    account.FirstName,
		OwnedSpotIDs: ownedIDs,
	}, nil
}

// Credit tops up a user's balance and returns the new total.
// The account is created if it doesn't exist yet.
func (s *Service) Credit(ctx context.Context, tgID int64, amount int64) (int64, error) {
	if tgID == 0 {
		return 0, errs.ErrAccountNotFound
	}
	if amount <= 0 || amount > entity.MaxCreditAmount {
		return 0, errs.ErrInvalidAmount
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.uow.Rollback(txCtx)
		}
	}()

	accounts := s.uow.GetAccountRepository(txCtx)
	account, err := accounts.GetOrCreateForUpdate(txCtx, tgID)
	if err != nil {
		return 0, err
	}

	if err := account.Credit(amount, s.timeProvider); err != nil {
		return 0, err
	}
	if err := accounts.Update(txCtx, account); err != nil {
		return 0, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return 0, err
	}
	committed = true

	s.logger.Info("Balance credited", map[string]any{
		"tg_id":       tgID,
		"amount":      amount,
		"new_balance": account.Balance(),
	})
	return account.Balance(), nil
}
