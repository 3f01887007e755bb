package database

import (
	"context"
	"errors"
	"time"

	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a warning
const slowQueryThreshold = 200 * time.Millisecond

// GormDatabaseLogger bridges GORM's logger interface to the application logger
type GormDatabaseLogger struct {
	logger coreport.Logger
	level  gormlogger.LogLevel
}

// NewGormDatabaseLogger creates a GORM logger backed by the application logger
func NewGormDatabaseLogger(logger coreport.Logger) *GormDatabaseLogger {
	return &GormDatabaseLogger{
		logger: logger,
		level:  gormlogger.Warn,
	}
}

// LogMode sets the log level
func (l *GormDatabaseLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.level = level
	return &newLogger
}

// Info logs informational messages
func (l *GormDatabaseLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.Info(msg, map[string]any{"data": data})
	}
}

// Warn logs warning messages
func (l *GormDatabaseLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn(msg, map[string]any{"data": data})
	}
}

// Error logs error messages
func (l *GormDatabaseLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.Error(msg, map[string]any{"data": data})
	}
}

// Trace logs SQL executions: errors always, slow queries as warnings
func (l *GormDatabaseLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.logger.Error("SQL error", map[string]any{
			"sql":        sql,
			"rows":       rows,
			"elapsed_ms": elapsed.Milliseconds(),
			"error":      err.Error(),
		})
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		l.logger.Warn("Slow SQL query", map[string]any{
			"sql":        sql,
			"rows":       rows,
			"elapsed_ms": elapsed.Milliseconds(),
		})
	case l.level >= gormlogger.Info:
		l.logger.Debug("SQL query", map[string]any{
			"sql":        sql,
			"rows":       rows,
			"elapsed_ms": elapsed.Milliseconds(),
		})
	}
}
