package model

import (
	"time"
)

// SpotAccess records that a user has permanently unlocked a spot.
// The composite unique index is what makes repeated grants no-ops.
type SpotAccess struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	TgID      int64     `gorm:"not null;uniqueIndex:uq_spot_access_tg_spot;index"`
	SpotID    uint64    `gorm:"not null;uniqueIndex:uq_spot_access_tg_spot;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for SpotAccess
func (SpotAccess) TableName() string {
	return "spot_access"
}
