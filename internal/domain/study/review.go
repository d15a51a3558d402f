package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review is the audit record of one review event. The resulting schedule is
// stored alongside so history can be inspected without replaying the scheduler.
type Review struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CardID uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	Card   *Card     `gorm:"constraint:OnDelete:CASCADE;foreignKey:CardID;references:ID" json:"-"`

	Quality    int       `gorm:"not null;column:quality" json:"quality"`
	ReviewedAt time.Time `gorm:"not null;index;column:reviewed_at" json:"reviewed_at"`

	EaseFactor   float64    `gorm:"not null;column:ease_factor" json:"ease_factor"`
	IntervalDays int        `gorm:"not null;column:interval_days" json:"interval"`
	NextReview   *time.Time `gorm:"column:next_review" json:"next_review"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Review) TableName() string { return "review" }

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ReviewResult is what a review call hands back: the audit row and the card after update.
type ReviewResult struct {
	Review *Review `json:"review"`
	Card   *Card   `json:"card"`
}
