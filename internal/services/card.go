package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/data/repos"
	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/apierr"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type CardService interface {
	Create(ctx context.Context, deckID uuid.UUID, front, back string) (*types.Card, error)
	Get(ctx context.Context, cardID uuid.UUID) (*types.Card, error)
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*types.Card, error)
	// ListDue returns cards due now. limit <= 0 falls back to the cards-per-day setting.
	ListDue(ctx context.Context, deckID uuid.UUID, limit int) ([]*types.Card, error)
	Update(ctx context.Context, cardID uuid.UUID, front, back string) (*types.Card, error)
	Delete(ctx context.Context, cardID uuid.UUID) error
}

type cardService struct {
	db           *gorm.DB
	log          *logger.Logger
	clock        Clock
	deckRepo     repos.DeckRepo
	cardRepo     repos.CardRepo
	settingsRepo repos.SettingsRepo
	notify       StudyNotifier
}

func NewCardService(db *gorm.DB, log *logger.Logger, clock Clock, deckRepo repos.DeckRepo, cardRepo repos.CardRepo, settingsRepo repos.SettingsRepo, notify StudyNotifier) CardService {
	serviceLog := log.With("service", "CardService")
	return &cardService{
		db:           db,
		log:          serviceLog,
		clock:        clock,
		deckRepo:     deckRepo,
		cardRepo:     cardRepo,
		settingsRepo: settingsRepo,
		notify:       notify,
	}
}

func validateCardContent(front, back string) error {
	if strings.TrimSpace(front) == "" {
		return apierr.Invalid("invalid_card", "card front is required")
	}
	if strings.TrimSpace(back) == "" {
		return apierr.Invalid("invalid_card", "card back is required")
	}
	return nil
}

func (s *cardService) requireDeck(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) error {
	deck, err := s.deckRepo.GetByID(ctx, tx, deckID)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}
	if deck == nil {
		return apierr.NotFound("deck_not_found", "deck %s", deckID)
	}
	return nil
}

func (s *cardService) requireCard(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) (*types.Card, error) {
	card, err := s.cardRepo.GetByID(ctx, tx, cardID)
	if err != nil {
		return nil, fmt.Errorf("load card: %w", err)
	}
	if card == nil {
		return nil, apierr.NotFound("card_not_found", "card %s", cardID)
	}
	return card, nil
}

func (s *cardService) Create(ctx context.Context, deckID uuid.UUID, front, back string) (*types.Card, error) {
	if err := validateCardContent(front, back); err != nil {
		return nil, err
	}
	card := types.NewCard(deckID, front, back)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireDeck(ctx, tx, deckID); err != nil {
			return err
		}
		if _, err := s.cardRepo.Create(ctx, tx, []*types.Card{card}); err != nil {
			return fmt.Errorf("create card: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Card created", "card_id", card.ID, "deck_id", deckID)
	observability.Current().IncCreated("card")
	s.notify.CardCreated(ctx, card)
	return card, nil
}

func (s *cardService) Get(ctx context.Context, cardID uuid.UUID) (*types.Card, error) {
	return s.requireCard(ctx, nil, cardID)
}

func (s *cardService) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*types.Card, error) {
	if err := s.requireDeck(ctx, nil, deckID); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.ListByDeckID(ctx, nil, deckID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

func (s *cardService) ListDue(ctx context.Context, deckID uuid.UUID, limit int) ([]*types.Card, error) {
	if err := s.requireDeck(ctx, nil, deckID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		settings, err := s.settingsRepo.GetOrCreate(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		limit = settings.CardsPerDay
	}
	cards, err := s.cardRepo.ListDueByDeckID(ctx, nil, deckID, s.clock.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	return cards, nil
}

func (s *cardService) Update(ctx context.Context, cardID uuid.UUID, front, back string) (*types.Card, error) {
	if err := validateCardContent(front, back); err != nil {
		return nil, err
	}
	var updated *types.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.requireCard(ctx, tx, cardID); err != nil {
			return err
		}
		if err := s.cardRepo.UpdateContent(ctx, tx, cardID, front, back); err != nil {
			return fmt.Errorf("update card: %w", err)
		}
		card, err := s.requireCard(ctx, tx, cardID)
		if err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.CardUpdated(ctx, updated)
	return updated, nil
}

func (s *cardService) Delete(ctx context.Context, cardID uuid.UUID) error {
	var card *types.Card
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.requireCard(ctx, tx, cardID)
		if err != nil {
			return err
		}
		if err := s.cardRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{cardID}); err != nil {
			return fmt.Errorf("delete card: %w", err)
		}
		card = c
		return nil
	})
	if err != nil {
		return err
	}
	observability.Current().IncDeleted("card", 1)
	s.notify.CardDeleted(ctx, card)
	return nil
}
