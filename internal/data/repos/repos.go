package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/data/repos/settings"
	"github.com/yungbote/repeat-backend/internal/data/repos/study"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type DeckRepo = study.DeckRepo
type CardRepo = study.CardRepo
type ReviewRepo = study.ReviewRepo

type SettingsRepo = settings.SettingsRepo

func NewDeckRepo(db *gorm.DB, baseLog *logger.Logger) DeckRepo {
	return study.NewDeckRepo(db, baseLog)
}

func NewCardRepo(db *gorm.DB, baseLog *logger.Logger) CardRepo {
	return study.NewCardRepo(db, baseLog)
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return study.NewReviewRepo(db, baseLog)
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	return settings.NewSettingsRepo(db, baseLog)
}
