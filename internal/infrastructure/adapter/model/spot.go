package model

import (
	"time"
)

// Spot represents the database model for spots
type Spot struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Title      string    `gorm:"not null"`
	Lat        float64   `gorm:"not null"`
	Lon        float64   `gorm:"not null"`
	ContentURL string    `gorm:"not null"`
	Price      int64     `gorm:"not null;default:20"`
	AuthorTgID *int64    `gorm:"index"` // soft reference, not a foreign key
	AuthorName string    `gorm:""`
	Danger     string    `gorm:""`
	Active     bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for Spot
func (Spot) TableName() string {
	return "spots"
}
