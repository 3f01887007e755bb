package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/logger"
	coremocks "github.com/Alex-KostPy/roofnn/mocks/port/core"
	persistencemocks "github.com/Alex-KostPy/roofnn/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func pinnedClock(t *testing.T) *coremocks.MockTimeProvider {
	t.Helper()
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()
	return mockTime
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject unverified identity", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		service := NewService(uow, pinnedClock(t), logger.NewNoopLogger())

		profile, err := service.GetProfile(ctx, entity.Identity{})

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("should grant the refill to a first-contact account", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		accounts := persistencemocks.NewMockAccountRepository(t)
		spots := persistencemocks.NewMockSpotRepository(t)

		clock := pinnedClock(t)
		account, err := entity.NewAccount(7, clock)
		require.NoError(t, err)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		spots.On("ListActiveIDsByAuthor", mock.Anything, int64(7)).Return([]uint64{}, nil).Once()

		service := NewService(uow, clock, logger.NewNoopLogger())
		profile, err := service.GetProfile(ctx, entity.Identity{TgID: 7, Username: "roofer", FirstName: "Alex"})

		require.NoError(t, err)
		assert.Equal(t, entity.SignupFreeCredits+entity.RefillFreeCredits, profile.FreeCredits)
		assert.Equal(t, "roofer", profile.Username)
		assert.Equal(t, "Alex", profile.FirstName)
		assert.Empty(t, profile.OwnedSpotIDs)
	})

	t.Run("should not persist when nothing changed", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		accounts := persistencemocks.NewMockAccountRepository(t)
		spots := persistencemocks.NewMockSpotRepository(t)

		clock := pinnedClock(t)
		account, err := entity.NewAccount(7, clock)
		require.NoError(t, err)
		account.TouchIdentity("roofer", "Alex", clock)
		refillAt := fixedTime.Add(-time.Hour)
		account.LastRefillAt = &refillAt

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		spots.On("ListActiveIDsByAuthor", mock.Anything, int64(7)).Return([]uint64{3, 5}, nil).Once()

		service := NewService(uow, clock, logger.NewNoopLogger())
		profile, err := service.GetProfile(ctx, entity.Identity{TgID: 7, Username: "roofer", FirstName: "Alex"})

		require.NoError(t, err)
		accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Equal(t, []uint64{3, 5}, profile.OwnedSpotIDs)
	})
}

func TestCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject a zero tg id", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		service := NewService(uow, pinnedClock(t), logger.NewNoopLogger())

		balance, err := service.Credit(ctx, 0, 50)

		assert.Zero(t, balance)
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})

	t.Run("should reject non-positive and oversized amounts before any storage call", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		service := NewService(uow, pinnedClock(t), logger.NewNoopLogger())

		for _, amount := range []int64{0, -5, entity.MaxCreditAmount + 1} {
			balance, err := service.Credit(ctx, 7, amount)
			assert.Zero(t, balance)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		}
	})

	t.Run("should top up and return the new balance", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		clock := pinnedClock(t)
		account, err := entity.NewAccount(7, clock)
		require.NoError(t, err)
		account.SetBalance(10)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		service := NewService(uow, clock, logger.NewNoopLogger())
		balance, err := service.Credit(ctx, 7, 40)

		require.NoError(t, err)
		assert.Equal(t, int64(50), balance)
	})

	t.Run("should roll back when the update fails", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		clock := pinnedClock(t)
		account, err := entity.NewAccount(7, clock)
		require.NoError(t, err)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(errs.ErrUnavailable).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		service := NewService(uow, clock, logger.NewNoopLogger())
		balance, err := service.Credit(ctx, 7, 40)

		assert.Zero(t, balance)
		assert.ErrorIs(t, err, errs.ErrUnavailable)
	})
}
