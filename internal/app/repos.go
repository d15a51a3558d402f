package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/data/repos"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
)

type Repos struct {
	Deck     repos.DeckRepo
	Card     repos.CardRepo
	Review   repos.ReviewRepo
	Settings repos.SettingsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Deck:     repos.NewDeckRepo(db, log),
		Card:     repos.NewCardRepo(db, log),
		Review:   repos.NewReviewRepo(db, log),
		Settings: repos.NewSettingsRepo(db, log),
	}
}
