package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/scheduler"
)

type Card struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeckID uuid.UUID `gorm:"type:uuid;not null;index" json:"deck_id"`
	Deck   *Deck     `gorm:"constraint:OnDelete:CASCADE;foreignKey:DeckID;references:ID" json:"-"`

	Front string `gorm:"not null;column:front" json:"front"`
	Back  string `gorm:"not null;column:back" json:"back"`

	// Scheduling state, owned by the scheduler package.
	EaseFactor   float64    `gorm:"not null;default:2.5;column:ease_factor" json:"ease_factor"`
	IntervalDays int        `gorm:"not null;default:0;column:interval_days" json:"interval"`
	NextReview   *time.Time `gorm:"index;column:next_review" json:"next_review"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Card) TableName() string { return "card" }

func (c *Card) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.EaseFactor == 0 {
		c.EaseFactor = scheduler.DefaultEaseFactor
	}
	return nil
}

// NewCard returns an unsaved card with the default schedule.
func NewCard(deckID uuid.UUID, front, back string) *Card {
	st := scheduler.NewState()
	return &Card{
		ID:           uuid.New(),
		DeckID:       deckID,
		Front:        front,
		Back:         back,
		EaseFactor:   st.EaseFactor,
		IntervalDays: st.Interval,
		NextReview:   st.NextReview,
	}
}

func (c *Card) Schedule() scheduler.State {
	return scheduler.State{
		EaseFactor: c.EaseFactor,
		Interval:   c.IntervalDays,
		NextReview: c.NextReview,
	}
}

func (c *Card) ApplySchedule(s scheduler.State) {
	c.EaseFactor = s.EaseFactor
	c.IntervalDays = s.Interval
	c.NextReview = s.NextReview
}

func (c *Card) IsDue(now time.Time) bool {
	return scheduler.IsDue(c.NextReview, now)
}
