package model

import (
	"time"
)

// Account represents the database model for user ledger accounts
type Account struct {
	TgID         int64      `gorm:"primaryKey;autoIncrement:false"`
	Balance      int64      `gorm:"not null;default:0"` // whole currency units
	FreeCredits  int        `gorm:"not null;default:0"`
	LastRefillAt *time.Time `gorm:""`
	Username     string     `gorm:""`
	FirstName    string     `gorm:""`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
