package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/data/repos"
	types "github.com/yungbote/repeat-backend/internal/domain"
	domainsettings "github.com/yungbote/repeat-backend/internal/domain/settings"
	"github.com/yungbote/repeat-backend/internal/platform/apierr"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

// SettingsUpdate is a partial update; nil fields are left unchanged.
type SettingsUpdate struct {
	NotificationsEnabled *bool `json:"notifications_enabled"`
	CardsPerDay          *int  `json:"cards_per_day"`
	DarkMode             *bool `json:"dark_mode"`
}

type SettingsService interface {
	Get(ctx context.Context) (*types.Settings, error)
	Update(ctx context.Context, in SettingsUpdate) (*types.Settings, error)
}

type settingsService struct {
	db           *gorm.DB
	log          *logger.Logger
	settingsRepo repos.SettingsRepo
	notify       StudyNotifier
}

func NewSettingsService(db *gorm.DB, log *logger.Logger, settingsRepo repos.SettingsRepo, notify StudyNotifier) SettingsService {
	serviceLog := log.With("service", "SettingsService")
	return &settingsService{
		db:           db,
		log:          serviceLog,
		settingsRepo: settingsRepo,
		notify:       notify,
	}
}

func (s *settingsService) Get(ctx context.Context) (*types.Settings, error) {
	row, err := s.settingsRepo.GetOrCreate(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return row, nil
}

func (s *settingsService) Update(ctx context.Context, in SettingsUpdate) (*types.Settings, error) {
	if in.CardsPerDay != nil && (*in.CardsPerDay < 1 || *in.CardsPerDay > domainsettings.MaxCardsPerDay) {
		return nil, apierr.Invalid("invalid_cards_per_day", "cards per day must be between 1 and %d", domainsettings.MaxCardsPerDay)
	}

	var updated *types.Settings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.settingsRepo.GetOrCreate(ctx, tx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if in.NotificationsEnabled != nil {
			row.NotificationsEnabled = *in.NotificationsEnabled
		}
		if in.CardsPerDay != nil {
			row.CardsPerDay = *in.CardsPerDay
		}
		if in.DarkMode != nil {
			row.DarkMode = *in.DarkMode
		}
		if err := s.settingsRepo.Update(ctx, tx, row); err != nil {
			return fmt.Errorf("update settings: %w", err)
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.SettingsUpdated(ctx, updated)
	return updated, nil
}
