package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/data/repos"
	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/apierr"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
	"github.com/yungbote/repeat-backend/internal/scheduler"
)

const DefaultHistoryLimit = 100

type ReviewService interface {
	// Review grades a card, persists the new schedule and the audit row, and
	// returns both. metadata is optional client JSON stored with the review.
	Review(ctx context.Context, cardID uuid.UUID, quality int, metadata json.RawMessage) (*types.ReviewResult, error)
	History(ctx context.Context, cardID uuid.UUID, limit int) ([]*types.Review, error)
}

type reviewService struct {
	db         *gorm.DB
	log        *logger.Logger
	clock      Clock
	cardRepo   repos.CardRepo
	reviewRepo repos.ReviewRepo
	notify     StudyNotifier
}

func NewReviewService(db *gorm.DB, log *logger.Logger, clock Clock, cardRepo repos.CardRepo, reviewRepo repos.ReviewRepo, notify StudyNotifier) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	return &reviewService{
		db:         db,
		log:        serviceLog,
		clock:      clock,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
		notify:     notify,
	}
}

func (s *reviewService) Review(ctx context.Context, cardID uuid.UUID, quality int, metadata json.RawMessage) (result *types.ReviewResult, err error) {
	ctx, span := observability.Tracer().Start(ctx, "ReviewService.Review")
	span.SetAttributes(attribute.String("card.id", cardID.String()), attribute.Int("review.quality", quality))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	q, err := scheduler.ParseQuality(quality)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_quality", err)
	}
	var meta datatypes.JSON
	if len(metadata) > 0 && string(metadata) != "null" {
		if !json.Valid(metadata) {
			return nil, apierr.Invalid("invalid_metadata", "review metadata is not valid JSON")
		}
		meta = datatypes.JSON(metadata)
	}

	now := s.clock.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		card, err := s.cardRepo.GetByIDForUpdate(ctx, tx, cardID)
		if err != nil {
			return fmt.Errorf("load card: %w", err)
		}
		if card == nil {
			return apierr.NotFound("card_not_found", "card %s", cardID)
		}

		card.ApplySchedule(scheduler.Next(card.Schedule(), q, now))
		if err := s.cardRepo.SaveSchedule(ctx, tx, card); err != nil {
			return fmt.Errorf("save schedule: %w", err)
		}

		review := &types.Review{
			ID:           uuid.New(),
			CardID:       card.ID,
			Quality:      int(q),
			ReviewedAt:   now,
			EaseFactor:   card.EaseFactor,
			IntervalDays: card.IntervalDays,
			NextReview:   card.NextReview,
			Metadata:     meta,
		}
		if _, err := s.reviewRepo.Create(ctx, tx, []*types.Review{review}); err != nil {
			return fmt.Errorf("store review: %w", err)
		}

		saved, err := s.cardRepo.GetByID(ctx, tx, card.ID)
		if err != nil {
			return fmt.Errorf("reload card: %w", err)
		}
		if saved == nil {
			return errors.New("card vanished during review")
		}
		result = &types.ReviewResult{Review: review, Card: saved}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("review.interval_days", result.Card.IntervalDays),
		attribute.Float64("review.ease_factor", result.Card.EaseFactor),
	)
	s.log.Debug("Review recorded",
		"card_id", cardID,
		"quality", int(q),
		"interval", result.Card.IntervalDays,
		"ease_factor", result.Card.EaseFactor,
	)
	observability.Current().ObserveReview(int(q), q.Outcome(), result.Card.IntervalDays)
	s.notify.ReviewRecorded(ctx, result)
	return result, nil
}

func (s *reviewService) History(ctx context.Context, cardID uuid.UUID, limit int) ([]*types.Review, error) {
	card, err := s.cardRepo.GetByID(ctx, nil, cardID)
	if err != nil {
		return nil, fmt.Errorf("load card: %w", err)
	}
	if card == nil {
		return nil, apierr.NotFound("card_not_found", "card %s", cardID)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	reviews, err := s.reviewRepo.ListByCardID(ctx, nil, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
