package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/logger"
	coremocks "github.com/Alex-KostPy/roofnn/mocks/port/core"
)

// sqlRecorder captures the SQL gorm builds so statements can be inspected
// without a live database.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func newDryRunDB(t *testing.T, recorder *sqlRecorder) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=roofnn dbname=roofnn",
	}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 recorder,
	})
	require.NoError(t, err)
	return db
}

func TestAccessRepositoryGrant(t *testing.T) {
	t.Run("should issue a conflict-tolerant insert", func(t *testing.T) {
		recorder := &sqlRecorder{}
		db := newDryRunDB(t, recorder)
		timeProvider := coremocks.NewMockTimeProvider(t)
		timeProvider.On("Now").Return(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

		repo := NewAccessRepository(db, timeProvider, logger.NewNoopLogger())
		err := repo.Grant(context.Background(), 42, 7)
		require.NoError(t, err)

		// On Postgres a plain insert that hits the unique index raises an
		// error that aborts the whole transaction, so the statement itself
		// has to tolerate the conflict.
		require.Len(t, recorder.statements, 1)
		stmt := recorder.statements[0]
		assert.Contains(t, stmt, `INSERT INTO "spot_access"`)
		assert.Contains(t, stmt, "ON CONFLICT")
		assert.Contains(t, stmt, "DO NOTHING")
	})
}
