package study

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error)
	ListSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]*types.Review, error)
	ListByCardID(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, limit int) ([]*types.Review, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (r *reviewRepo) Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(reviews) == 0 {
		return []*types.Review{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListSince returns reviews at or after since, oldest first.
func (r *reviewRepo) ListSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Where("reviewed_at >= ?", since.UTC()).
		Order("reviewed_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByCardID returns the newest reviews of a card first. limit <= 0 means all.
func (r *reviewRepo) ListByCardID(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, limit int) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("reviewed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.Review
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
