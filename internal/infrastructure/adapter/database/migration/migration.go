package migration

import (
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// MigrationManager manages database schema migrations
type MigrationManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger) *MigrationManager {
	return &MigrationManager{
		db:     db,
		logger: logger,
	}
}

// MigrateAll creates or updates the schema for all models. The composite
// unique index on spot_access is what enforces one memo per (user, spot).
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", nil)

	if err := m.db.AutoMigrate(
		&model.Account{},
		&model.Spot{},
		&model.SpotAccess{},
	); err != nil {
		m.logger.Error("Failed to migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Database migrations completed", nil)
	return nil
}
