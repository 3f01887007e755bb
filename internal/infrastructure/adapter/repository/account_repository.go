package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to a domain entity
func (r *AccountRepository) modelToEntity(m *model.Account) *entity.Account {
	account := &entity.Account{
		TgID:         m.TgID,
		LastRefillAt: m.LastRefillAt,
		Username:     m.Username,
		FirstName:    m.FirstName,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	account.SetBalance(m.Balance)
	account.SetFreeCredits(m.FreeCredits)
	return account
}

// entityToModel converts a domain entity to an account model
func (r *AccountRepository) entityToModel(account *entity.Account) *model.Account {
	return &model.Account{
		TgID:         account.TgID,
		Balance:      account.Balance(),
		FreeCredits:  account.FreeCredits(),
		LastRefillAt: account.LastRefillAt,
		Username:     account.Username,
		FirstName:    account.FirstName,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, tgID int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"tg_id": tgID,
		"error": err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateAccount
	}
	if r.errorClassifier.IsLockError(err) {
		return errs.ErrAccountLocked
	}
	return fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
}

// GetByTgID retrieves an account by Telegram user id
func (r *AccountRepository) GetByTgID(ctx context.Context, tgID int64) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).Where("tg_id = ?", tgID).First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, tgID)
	}
	return r.modelToEntity(&m), nil
}

// GetOrCreateForUpdate returns the account under an exclusive row lock,
// creating it with signup defaults if absent. Must run inside a transaction;
// the lock is held until the surrounding transaction ends.
func (r *AccountRepository) GetOrCreateForUpdate(ctx context.Context, tgID int64) (*entity.Account, error) {
	var m model.Account
	result := r.db.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("tg_id = ?", tgID).
		First(&m)

	if result.Error == nil {
		return r.modelToEntity(&m), nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, r.handleDatabaseError("locking account", result.Error, tgID)
	}

	account, err := entity.NewAccount(tgID, r.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := r.Create(ctx, account); err != nil {
		if !errors.Is(err, errs.ErrDuplicateAccount) {
			return nil, err
		}
		// Lost the insert race; the row exists now, lock it.
		result = r.db.WithContext(ctx).
			Set("gorm:query_option", "FOR UPDATE").
			Where("tg_id = ?", tgID).
			First(&m)
		if result.Error != nil {
			return nil, r.handleDatabaseError("locking account after race", result.Error, tgID)
		}
		return r.modelToEntity(&m), nil
	}

	r.logger.Info("Account created", map[string]any{
		"tg_id":        tgID,
		"free_credits": account.FreeCredits(),
	})
	return account, nil
}

// Create persists a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Create(r.entityToModel(account))
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, account.TgID)
	}
	return nil
}

// Update persists account mutations
func (r *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("tg_id = ?", account.TgID).
		Updates(map[string]interface{}{
			"balance":        account.Balance(),
			"free_credits":   account.FreeCredits(),
			"last_refill_at": account.LastRefillAt,
			"username":       account.Username,
			"first_name":     account.FirstName,
			"updated_at":     account.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating account", result.Error, account.TgID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
