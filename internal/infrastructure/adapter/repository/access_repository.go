package repository

import (
	"context"
	"fmt"

	errs "github.com/Alex-KostPy/roofnn/internal/domain/error"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccessRepository implements persistence.AccessRepository using GORM
type AccessRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAccessRepository creates a new AccessRepository instance
func NewAccessRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccessRepository {
	return &AccessRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Has reports whether a memo exists for the (user, spot) pair
func (r *AccessRepository) Has(ctx context.Context, tgID int64, spotID uint64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.SpotAccess{}).
		Where("tg_id = ? AND spot_id = ?", tgID, spotID).
		Count(&count)
	if result.Error != nil {
		r.logger.Error("Database error when checking access memo", map[string]any{
			"tg_id":   tgID,
			"spot_id": spotID,
			"error":   result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}
	return count > 0, nil
}

// Grant inserts a memo if absent. The insert carries ON CONFLICT DO NOTHING
// so a repeated grant never raises a constraint error, which on Postgres
// would abort the surrounding transaction.
func (r *AccessRepository) Grant(ctx context.Context, tgID int64, spotID uint64) error {
	memo := model.SpotAccess{
		TgID:      tgID,
		SpotID:    spotID,
		CreatedAt: r.timeProvider.Now(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&memo)
	if result.Error != nil {
		r.logger.Error("Database error when granting access", map[string]any{
			"tg_id":   tgID,
			"spot_id": spotID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}
	return nil
}
