package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/repeat-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureStudyIndexes(db)
}

// EnsureStudyIndexes adds the composite indexes behind the due-card queries.
// The statements are valid on both SQLite and Postgres.
func EnsureStudyIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_card_deck_next_review
		ON card (deck_id, next_review);
	`).Error; err != nil {
		return fmt.Errorf("create idx_card_deck_next_review: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_review_card_reviewed_at
		ON review (card_id, reviewed_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_review_card_reviewed_at: %w", err)
	}
	return nil
}
