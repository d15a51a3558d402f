package study

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type DeckRepo interface {
	Create(ctx context.Context, tx *gorm.DB, decks []*types.Deck) ([]*types.Deck, error)
	GetByID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) (*types.Deck, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID) ([]*types.Deck, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Deck, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID) error
}

type deckRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeckRepo(db *gorm.DB, baseLog *logger.Logger) DeckRepo {
	repoLog := baseLog.With("repo", "DeckRepo")
	return &deckRepo{db: db, log: repoLog}
}

func (r *deckRepo) Create(ctx context.Context, tx *gorm.DB, decks []*types.Deck) ([]*types.Deck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(decks) == 0 {
		return []*types.Deck{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&decks).Error; err != nil {
		return nil, err
	}
	return decks, nil
}

// GetByID returns nil, nil when the deck does not exist or was deleted.
func (r *deckRepo) GetByID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) (*types.Deck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var deck types.Deck
	err := transaction.WithContext(ctx).
		Where("id = ?", deckID).
		First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepo) GetByIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID) ([]*types.Deck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Deck
	if len(deckIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", deckIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *deckRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Deck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Deck
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *deckRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(deckIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", deckIDs).
		Delete(&types.Deck{}).Error; err != nil {
		return err
	}
	return nil
}
