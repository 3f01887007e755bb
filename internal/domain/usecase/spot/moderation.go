package spot

import (
	"context"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/domain/port/persistence"
)

// Moderation implements the privileged approve/reject gate
type Moderation struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	reward       int64
}

// NewModeration creates a new moderation service
func NewModeration(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	reward int64,
) *Moderation {
	if reward <= 0 {
		reward = entity.ApprovalReward
	}
	return &Moderation{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		reward:       reward,
	}
}

// Approve activates the spot and credits its author the fixed reward, as one
// transaction. The reward is independent of the spot's price. Spots without
// an author are only activated.
func (m *Moderation) Approve(ctx context.Context, spotID uint64) error {
	txCtx, err := m.uow.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = m.uow.Rollback(txCtx)
		}
	}()

	spots := m.uow.GetSpotRepository(txCtx)
	spot, err := spots.GetByID(txCtx, spotID)
	if err != nil {
		return err
	}
	if err := spots.Activate(txCtx, spotID); err != nil {
		return err
	}

	if spot.AuthorTgID != nil {
		accounts := m.uow.GetAccountRepository(txCtx)
		account, err := accounts.GetOrCreateForUpdate(txCtx, *spot.AuthorTgID)
		if err != nil {
			return err
		}
		if err := account.Credit(m.reward, m.timeProvider); err != nil {
			return err
		}
		if err := accounts.Update(txCtx, account); err != nil {
			return err
		}
	}

	if err := m.uow.Commit(txCtx); err != nil {
		return err
	}
	committed = true

	m.logger.Info("Spot approved", map[string]any{
		"spot_id":  spotID,
		"title":    spot.Title,
		"rewarded": spot.AuthorTgID != nil,
	})
	return nil
}

// Reject deletes the spot entirely. Rejection is destructive: no audit trail
// is kept.
func (m *Moderation) Reject(ctx context.Context, spotID uint64) error {
	txCtx, err := m.uow.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = m.uow.Rollback(txCtx)
		}
	}()

	if err := m.uow.GetSpotRepository(txCtx).Delete(txCtx, spotID); err != nil {
		return err
	}
	if err := m.uow.Commit(txCtx); err != nil {
		return err
	}
	committed = true

	m.logger.Info("Spot rejected and removed", map[string]any{
		"spot_id": spotID,
	})
	return nil
}
