package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing statuses
const (
	ListingStatusActive = "active"
	ListingStatusSold   = "sold"
)

type Listing struct {
	ID          string         `gorm:"primaryKey;size:36"`
	SellerID    uint           `gorm:"not null;index"`
	Title       string         `gorm:"not null"`
	Description string         `gorm:"type:text"`
	Price       int64          `gorm:"not null"` // whole euros, the original asking price
	ImageURLs   StringList     `gorm:"type:jsonb"`
	Status      string         `gorm:"not null;default:'active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
