package study

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type CardRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cards []*types.Card) ([]*types.Card, error)
	GetByID(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) (*types.Card, error)
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) (*types.Card, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) ([]*types.Card, error)
	ListByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) ([]*types.Card, error)
	ListDueByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID, now time.Time, limit int) ([]*types.Card, error)
	UpdateContent(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, front, back string) error
	SaveSchedule(ctx context.Context, tx *gorm.DB, card *types.Card) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) error
	SoftDeleteByDeckIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID) error
	CountsByDeckIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID, now time.Time) (map[uuid.UUID]types.DeckCounts, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountLearned(ctx context.Context, tx *gorm.DB) (int64, error)
}

type cardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCardRepo(db *gorm.DB, baseLog *logger.Logger) CardRepo {
	repoLog := baseLog.With("repo", "CardRepo")
	return &cardRepo{db: db, log: repoLog}
}

func (r *cardRepo) Create(ctx context.Context, tx *gorm.DB, cards []*types.Card) ([]*types.Card, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(cards) == 0 {
		return []*types.Card{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// GetByID returns nil, nil when the card does not exist or was deleted.
func (r *cardRepo) GetByID(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) (*types.Card, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var card types.Card
	err := transaction.WithContext(ctx).
		Where("id = ?", cardID).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetByIDForUpdate locks the row on Postgres. SQLite has a single writer
// connection, so the plain read inside the transaction is already serialized.
func (r *cardRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) (*types.Card, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Where("id = ?", cardID)
	if transaction.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var card types.Card
	err := q.First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) GetByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) ([]*types.Card, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Card
	if len(cardIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", cardIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *cardRepo) ListByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) ([]*types.Card, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Card
	if err := transaction.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListDueByDeckID returns never-reviewed cards first, then the most overdue.
// limit <= 0 means no limit.
func (r *cardRepo) ListDueByDeckID(ctx context.Context, tx *gorm.DB, deckID uuid.UUID, now time.Time, limit int) ([]*types.Card, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Where("(next_review IS NULL OR next_review <= ?)", now.UTC()).
		Order("CASE WHEN next_review IS NULL THEN 0 ELSE 1 END, next_review ASC, created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.Card
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *cardRepo) UpdateContent(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, front, back string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Card{}).
		Where("id = ?", cardID).
		Updates(map[string]interface{}{
			"front": front,
			"back":  back,
		}).Error
}

// SaveSchedule persists the scheduling columns only. A map is used so a nil
// next_review and a zero interval are written rather than skipped.
func (r *cardRepo) SaveSchedule(ctx context.Context, tx *gorm.DB, card *types.Card) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Card{}).
		Where("id = ?", card.ID).
		Updates(map[string]interface{}{
			"ease_factor":   card.EaseFactor,
			"interval_days": card.IntervalDays,
			"next_review":   card.NextReview,
		}).Error
}

func (r *cardRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, cardIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(cardIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", cardIDs).
		Delete(&types.Card{}).Error
}

func (r *cardRepo) SoftDeleteByDeckIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(deckIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("deck_id IN ?", deckIDs).
		Delete(&types.Card{}).Error
}

type deckCountRow struct {
	DeckID    uuid.UUID
	CardCount int64
	DueCards  int64
}

// CountsByDeckIDs returns total and due card counts keyed by deck. Decks with
// no cards are absent from the map.
func (r *cardRepo) CountsByDeckIDs(ctx context.Context, tx *gorm.DB, deckIDs []uuid.UUID, now time.Time) (map[uuid.UUID]types.DeckCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	out := make(map[uuid.UUID]types.DeckCounts, len(deckIDs))
	if len(deckIDs) == 0 {
		return out, nil
	}

	var rows []deckCountRow
	if err := transaction.WithContext(ctx).
		Model(&types.Card{}).
		Select("deck_id, COUNT(*) AS card_count, SUM(CASE WHEN next_review IS NULL OR next_review <= ? THEN 1 ELSE 0 END) AS due_cards", now.UTC()).
		Where("deck_id IN ?", deckIDs).
		Group("deck_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.DeckID] = types.DeckCounts{
			DeckID:    row.DeckID,
			CardCount: row.CardCount,
			DueCards:  row.DueCards,
		}
	}
	return out, nil
}

func (r *cardRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).Model(&types.Card{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountLearned counts cards with a positive interval, i.e. at least one
// successful review since the last lapse.
func (r *cardRepo) CountLearned(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.Card{}).
		Where("interval_days > 0").
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
