package access

import (
	"context"
	"sync"
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

// settledAccount builds an account whose refill window is still open so the
// weekly top-up doesn't fire mid-test
func settledAccount(t *testing.T, tgID int64, balance int64, freeCredits int) *entity.Account {
	t.Helper()
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	account, err := entity.NewAccount(tgID, mockTime)
	require.NoError(t, err)
	account.SetBalance(balance)
	account.SetFreeCredits(freeCredits)
	refillAt := fixedTime.Add(-time.Hour)
	account.LastRefillAt = &refillAt
	return account
}

func newTestService(t *testing.T, uow *persistencemocks.MockUnitOfWork) *Service {
	t.Helper()
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	s := NewService(uow, mockTime, logger.NewNoopLogger())
	t.Cleanup(s.Shutdown)
	return s
}

func TestRequestAccess(t *testing.T) {
	ctx := context.Background()
	spotURL := "https://telegra.ph/tower-guide"

	t.Run("should reject unverified caller without touching storage", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		service := newTestService(t, uow)

		url, err := service.RequestAccess(ctx, 0, 1)

		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
		assert.Empty(t, url)
	})

	t.Run("should charge a free credit before the balance", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		account := settledAccount(t, 7, 50, 1)
		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(false, nil).Once()
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		memos.On("Grant", mock.Anything, int64(7), uint64(1)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		service := newTestService(t, uow)
		url, err := service.RequestAccess(ctx, 7, 1)

		require.NoError(t, err)
		assert.Equal(t, spotURL, url)
		assert.Equal(t, 0, account.FreeCredits())
		assert.Equal(t, int64(50), account.Balance(), "balance must stay untouched while free credits remain")
	})

	t.Run("should debit the balance when free credits are exhausted", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		account := settledAccount(t, 7, 20, 0)
		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(false, nil).Once()
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		memos.On("Grant", mock.Anything, int64(7), uint64(1)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		service := newTestService(t, uow)
		url, err := service.RequestAccess(ctx, 7, 1)

		require.NoError(t, err)
		assert.Equal(t, spotURL, url)
		assert.Equal(t, int64(0), account.Balance())
	})

	t.Run("should deny without mutating anything when funds are insufficient", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		account := settledAccount(t, 7, 19, 0)
		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(false, nil).Once()
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		service := newTestService(t, uow)
		url, err := service.RequestAccess(ctx, 7, 1)

		assert.Empty(t, url)
		assert.True(t, errs.IsInsufficientFundsError(err))
		assert.Equal(t, int64(19), account.Balance())

		var fundsErr *errs.InsufficientFundsError
		require.ErrorAs(t, err, &fundsErr)
		assert.Equal(t, int64(entity.DefaultSpotPrice), fundsErr.Price)
		assert.Equal(t, int64(19), fundsErr.Balance)
	})

	t.Run("should let the author view their own spot without charge", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		authorID := int64(7)
		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true, AuthorTgID: &authorID}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Once()
		memos.On("Grant", mock.Anything, int64(7), uint64(1)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		service := newTestService(t, uow)
		url, err := service.RequestAccess(ctx, 7, 1)

		require.NoError(t, err)
		assert.Equal(t, spotURL, url)
		accounts.AssertNotCalled(t, "GetOrCreateForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("should let the author reopen their own spot repeatedly", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		authorID := int64(7)
		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true, AuthorTgID: &authorID}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Twice()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Twice()
		// The second grant lands on an existing memo; the repository keeps
		// that a non-error so the transaction still commits.
		memos.On("Grant", mock.Anything, int64(7), uint64(1)).Return(nil).Twice()
		uow.On("Commit", mock.Anything).Return(nil).Twice()

		service := newTestService(t, uow)
		for i := 0; i < 2; i++ {
			url, err := service.RequestAccess(ctx, 7, 1)
			require.NoError(t, err)
			assert.Equal(t, spotURL, url)
		}
		uow.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("should serve memoized access without touching the ledger", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(true, nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		service := newTestService(t, uow)
		url, err := service.RequestAccess(ctx, 7, 1)

		require.NoError(t, err)
		assert.Equal(t, spotURL, url)
		accounts.AssertNotCalled(t, "GetOrCreateForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("should propagate spot not found and roll back", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		uow.On("Begin", mock.Anything).Return(ctx, nil).Once()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(99)).Return(nil, errs.ErrSpotNotFound).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		service := newTestService(t, uow)
		url, err := service.RequestAccess(ctx, 7, 99)

		assert.Empty(t, url)
		assert.ErrorIs(t, err, errs.ErrSpotNotFound)
	})

	t.Run("should charge a repeat purchase only once", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		account := settledAccount(t, 7, 20, 0)
		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Twice()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Twice()
		// First pass pays, second pass hits the memo
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(false, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(true, nil).Once()
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		memos.On("Grant", mock.Anything, int64(7), uint64(1)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Twice()

		service := newTestService(t, uow)

		url, err := service.RequestAccess(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, spotURL, url)

		url, err = service.RequestAccess(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, spotURL, url)

		assert.Equal(t, int64(0), account.Balance())
	})

	t.Run("should deny the second unlock when only one free credit existed", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		account := settledAccount(t, 7, 0, 1)
		first := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true}
		second := &entity.Spot{ID: 2, ContentURL: "https://telegra.ph/other", Price: entity.DefaultSpotPrice, Active: true}

		uow.On("Begin", mock.Anything).Return(ctx, nil).Twice()
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(first, nil).Once()
		spots.On("GetActive", mock.Anything, uint64(2)).Return(second, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(false, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(2)).Return(false, nil).Once()
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Twice()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		memos.On("Grant", mock.Anything, int64(7), uint64(1)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		service := newTestService(t, uow)

		url, err := service.RequestAccess(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, spotURL, url)
		assert.Equal(t, 0, account.FreeCredits())

		url, err = service.RequestAccess(ctx, 7, 2)
		assert.Empty(t, url)
		assert.True(t, errs.IsInsufficientFundsError(err))
	})

	t.Run("should serialize concurrent requests from the same user", func(t *testing.T) {
		uow := persistencemocks.NewMockUnitOfWork(t)
		spots := persistencemocks.NewMockSpotRepository(t)
		memos := persistencemocks.NewMockAccessRepository(t)
		accounts := persistencemocks.NewMockAccountRepository(t)

		const workers = 10
		account := settledAccount(t, 7, 20, 0)
		spot := &entity.Spot{ID: 1, ContentURL: spotURL, Price: entity.DefaultSpotPrice, Active: true}

		// The queue guarantees the processor never runs concurrently for one
		// user, so plain expectation ordering is safe here: the first request
		// pays, every later one finds the memo.
		uow.On("Begin", mock.Anything).Return(ctx, nil).Times(workers)
		uow.On("GetSpotRepository", mock.Anything).Return(spots)
		uow.On("GetAccessRepository", mock.Anything).Return(memos)
		uow.On("GetAccountRepository", mock.Anything).Return(accounts)
		spots.On("GetActive", mock.Anything, uint64(1)).Return(spot, nil).Times(workers)
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(false, nil).Once()
		memos.On("Has", mock.Anything, int64(7), uint64(1)).Return(true, nil).Times(workers - 1)
		accounts.On("GetOrCreateForUpdate", mock.Anything, int64(7)).Return(account, nil).Once()
		accounts.On("Update", mock.Anything, account).Return(nil).Once()
		memos.On("Grant", mock.Anything, int64(7), uint64(1)).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Times(workers)

		service := newTestService(t, uow)

		var wg sync.WaitGroup
		results := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := service.RequestAccess(ctx, 7, 1)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		for err := range results {
			assert.NoError(t, err)
		}
		assert.Equal(t, int64(0), account.Balance(), "the price must be charged exactly once")
	})
}
