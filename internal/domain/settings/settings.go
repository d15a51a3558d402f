package settings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultCardsPerDay = 20
	MaxCardsPerDay     = 1000
)

// Settings is a single-row table of study preferences.
type Settings struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NotificationsEnabled bool      `gorm:"not null;column:notifications_enabled" json:"notifications_enabled"`
	CardsPerDay          int       `gorm:"not null;column:cards_per_day" json:"cards_per_day"`
	DarkMode             bool      `gorm:"not null;column:dark_mode" json:"dark_mode"`
	UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}

func (Settings) TableName() string { return "settings" }

func (s *Settings) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func Defaults() *Settings {
	return &Settings{
		NotificationsEnabled: true,
		CardsPerDay:          DefaultCardsPerDay,
		DarkMode:             false,
	}
}
