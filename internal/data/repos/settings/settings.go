package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/repeat-backend/internal/domain"
	domainsettings "github.com/yungbote/repeat-backend/internal/domain/settings"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type SettingsRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB) (*types.Settings, error)
	Update(ctx context.Context, tx *gorm.DB, s *types.Settings) error
}

type settingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	repoLog := baseLog.With("repo", "SettingsRepo")
	return &settingsRepo{db: db, log: repoLog}
}

// GetOrCreate returns the single settings row, inserting defaults on first use.
func (r *settingsRepo) GetOrCreate(ctx context.Context, tx *gorm.DB) (*types.Settings, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.Settings
	err := transaction.WithContext(ctx).Order("updated_at ASC").First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	def := domainsettings.Defaults()
	if err := transaction.WithContext(ctx).Create(def).Error; err != nil {
		return nil, err
	}
	r.log.Debug("Created default settings", "id", def.ID)
	return def, nil
}

func (r *settingsRepo) Update(ctx context.Context, tx *gorm.DB, s *types.Settings) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Settings{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"notifications_enabled": s.NotificationsEnabled,
			"cards_per_day":         s.CardsPerDay,
			"dark_mode":             s.DarkMode,
		}).Error
}
