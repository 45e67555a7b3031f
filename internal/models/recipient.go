package models

import "time"

// Recipient is the PayNow account a user collects split payments into.
type Recipient struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"-"`
	Phone     string    `gorm:"not null" json:"phone"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
