package spot

import (
	"context"
	"testing"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/logger"
	persistencemocks "github.com/Alex-KostPy/roofnn/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("should activate the spot and reward its author", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		clock := pinnedClock(t)
		authorID := int64(7)
		pending := &entity.Spot{ID: 3, Title: "Old water tower", AuthorTgID: &authorID}
		account, err := entity.NewAccount(authorID, clock)
		require.NoError(t, err)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetByID", mock.Anything, uint64(3)).Return(pending, nil).Once()
		spots.On("Activate", mock.Anything, uint64(3)).Return(nil).Once()
		accounts.On("GetOrCreateForUpdate", mock.Anything, authorID).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		moderation := NewModeration(uow, clock, logger.NewNoopLogger(), entity.ApprovalReward)
		err = moderation.Approve(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(entity.ApprovalReward), account.Balance())
	})

	t.Run("should only activate an authorless spot", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)

		pending := &entity.Spot{ID: 3, Title: "Old water tower"}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		spots.On("GetByID", mock.Anything, uint64(3)).Return(pending, nil).Once()
		spots.On("Activate", mock.Anything, uint64(3)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		moderation := NewModeration(uow, pinnedClock(t), logger.NewNoopLogger(), entity.ApprovalReward)
		err := moderation.Approve(ctx, 3)

		require.NoError(t, err)
		uow.AssertNotCalled(t, "GetAccountRepository", mock.Anything)
	})

	t.Run("should roll back when the spot doesn't exist", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		spots.On("GetByID", mock.Anything, uint64(99)).Return(nil, errs.ErrSpotNotFound).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		moderation := NewModeration(uow, pinnedClock(t), logger.NewNoopLogger(), entity.ApprovalReward)
		err := moderation.Approve(ctx, 99)

		assert.ErrorIs(t, err, errs.ErrSpotNotFound)
	})

	t.Run("should roll back the activation when crediting the author fails", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		authorID := int64(7)
		pending := &entity.Spot{ID: 3, AuthorTgID: &authorID}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetByID", mock.Anything, uint64(3)).Return(pending, nil).Once()
		spots.On("Activate", mock.Anything, uint64(3)).Return(nil).Once()
		accounts.On("GetOrCreateForUpdate", mock.Anything, authorID).Return(nil, errs.ErrUnavailable).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		moderation := NewModeration(uow, pinnedClock(t), logger.NewNoopLogger(), entity.ApprovalReward)
		err := moderation.Approve(ctx, 3)

		assert.ErrorIs(t, err, errs.ErrUnavailable)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete the spot", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		spots.On("Delete", mock.Anything, uint64(3)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		moderation := NewModeration(uow, pinnedClock(t), logger.NewNoopLogger(), entity.ApprovalReward)
		err := moderation.Reject(ctx, 3)

		assert.NoError(t, err)
	})

	t.Run("should surface not found for an unknown spot", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		spots.On("Delete", mock.Anything, uint64(99)).Return(errs.ErrSpotNotFound).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		moderation := NewModeration(uow, pinnedClock(t), logger.NewNoopLogger(), entity.ApprovalReward)
		err := moderation.Reject(ctx, 99)

		assert.ErrorIs(t, err, errs.ErrSpotNotFound)
	})
}
