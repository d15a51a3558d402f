package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Deck struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null;index;column:name" json:"name"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Deck) TableName() string { return "deck" }

func (d *Deck) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DeckWithStats is a deck plus its card counts at a point in time.
type DeckWithStats struct {
	Deck
	CardCount int64 `json:"card_count"`
	DueCards  int64 `json:"due_cards"`
}

// DeckCounts is the aggregate row produced by the card repo for one deck.
type DeckCounts struct {
	DeckID    uuid.UUID
	CardCount int64
	DueCards  int64
}
