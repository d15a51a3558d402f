package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/data/repos"
	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/apierr"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

const MaxDeckNameLength = 200

type DeckService interface {
	Create(ctx context.Context, name string) (*types.Deck, error)
	List(ctx context.Context) ([]*types.DeckWithStats, error)
	Get(ctx context.Context, deckID uuid.UUID) (*types.DeckWithStats, error)
	Delete(ctx context.Context, deckID uuid.UUID) error
}

type deckService struct {
	db       *gorm.DB
	log      *logger.Logger
	clock    Clock
	deckRepo repos.DeckRepo
	cardRepo repos.CardRepo
	notify   StudyNotifier
}

func NewDeckService(db *gorm.DB, log *logger.Logger, clock Clock, deckRepo repos.DeckRepo, cardRepo repos.CardRepo, notify StudyNotifier) DeckService {
	serviceLog := log.With("service", "DeckService")
	return &deckService{
		db:       db,
		log:      serviceLog,
		clock:    clock,
		deckRepo: deckRepo,
		cardRepo: cardRepo,
		notify:   notify,
	}
}

func normalizeDeckName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apierr.Invalid("invalid_deck_name", "deck name is required")
	}
	if utf8.RuneCountInString(name) > MaxDeckNameLength {
		return "", apierr.Invalid("invalid_deck_name", "deck name longer than %d characters", MaxDeckNameLength)
	}
	return name, nil
}

func (s *deckService) Create(ctx context.Context, name string) (*types.Deck, error) {
	name, err := normalizeDeckName(name)
	if err != nil {
		return nil, err
	}
	deck := &types.Deck{ID: uuid.New(), Name: name}
	if _, err := s.deckRepo.Create(ctx, nil, []*types.Deck{deck}); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	s.log.Info("Deck created", "deck_id", deck.ID)
	observability.Current().IncCreated("deck")
	s.notify.DeckCreated(ctx, deck)
	return deck, nil
}

func (s *deckService) List(ctx context.Context) ([]*types.DeckWithStats, error) {
	decks, err := s.deckRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(decks))
	for _, d := range decks {
		ids = append(ids, d.ID)
	}
	counts, err := s.cardRepo.CountsByDeckIDs(ctx, nil, ids, s.clock.now())
	if err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}
	out := make([]*types.DeckWithStats, 0, len(decks))
	for _, d := range decks {
		c := counts[d.ID]
		out = append(out, &types.DeckWithStats{Deck: *d, CardCount: c.CardCount, DueCards: c.DueCards})
	}
	return out, nil
}

func (s *deckService) Get(ctx context.Context, deckID uuid.UUID) (*types.DeckWithStats, error) {
	deck, err := s.deckRepo.GetByID(ctx, nil, deckID)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	if deck == nil {
		return nil, apierr.NotFound("deck_not_found", "deck %s", deckID)
	}
	counts, err := s.cardRepo.CountsByDeckIDs(ctx, nil, []uuid.UUID{deckID}, s.clock.now())
	if err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}
	c := counts[deckID]
	return &types.DeckWithStats{Deck: *deck, CardCount: c.CardCount, DueCards: c.DueCards}, nil
}

// Delete removes the deck and its cards in one transaction.
func (s *deckService) Delete(ctx context.Context, deckID uuid.UUID) error {
	var removed int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deck, err := s.deckRepo.GetByID(ctx, tx, deckID)
		if err != nil {
			return fmt.Errorf("load deck: %w", err)
		}
		if deck == nil {
			return apierr.NotFound("deck_not_found", "deck %s", deckID)
		}
		cards, err := s.cardRepo.ListByDeckID(ctx, tx, deckID)
		if err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		removed = len(cards)
		if err := s.cardRepo.SoftDeleteByDeckIDs(ctx, tx, []uuid.UUID{deckID}); err != nil {
			return fmt.Errorf("delete cards: %w", err)
		}
		if err := s.deckRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{deckID}); err != nil {
			return fmt.Errorf("delete deck: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("Deck deleted", "deck_id", deckID, "cards", removed)
	m := observability.Current()
	m.IncDeleted("deck", 1)
	m.IncDeleted("card", removed)
	s.notify.DeckDeleted(ctx, deckID)
	return nil
}
