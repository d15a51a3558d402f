package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/repeat-backend/internal/data/repos"
	types "github.com/yungbote/repeat-backend/internal/domain"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
	"github.com/yungbote/repeat-backend/internal/scheduler"
)

// StatsWindow is how far back accuracy and daily counts look.
const StatsWindow = 7 * 24 * time.Hour

type StatisticsService interface {
	Get(ctx context.Context) (*types.Statistics, error)
}

type statisticsService struct {
	db         *gorm.DB
	log        *logger.Logger
	clock      Clock
	cardRepo   repos.CardRepo
	reviewRepo repos.ReviewRepo
}

func NewStatisticsService(db *gorm.DB, log *logger.Logger, clock Clock, cardRepo repos.CardRepo, reviewRepo repos.ReviewRepo) StatisticsService {
	serviceLog := log.With("service", "StatisticsService")
	return &statisticsService{
		db:         db,
		log:        serviceLog,
		clock:      clock,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *statisticsService) Get(ctx context.Context) (*types.Statistics, error) {
	ctx, span := observability.Tracer().Start(ctx, "StatisticsService.Get")
	defer span.End()

	since := s.clock.now().Add(-StatsWindow)

	var (
		total   int64
		learned int64
		recent  []*types.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.cardRepo.Count(gctx, nil)
		if err != nil {
			return fmt.Errorf("count cards: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		n, err := s.cardRepo.CountLearned(gctx, nil)
		if err != nil {
			return fmt.Errorf("count learned cards: %w", err)
		}
		learned = n
		return nil
	})
	g.Go(func() error {
		rows, err := s.reviewRepo.ListSince(gctx, nil, since)
		if err != nil {
			return fmt.Errorf("list recent reviews: %w", err)
		}
		recent = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.Statistics{
		TotalCards:      total,
		CardsLearned:    learned,
		AverageAccuracy: accuracy(recent),
		DailyStats:      dailyStats(recent),
	}, nil
}

// accuracy is the percentage of passing reviews, 0 when there are none.
func accuracy(reviews []*types.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	passed := 0
	for _, r := range reviews {
		if scheduler.Quality(r.Quality).Passed() {
			passed++
		}
	}
	return float64(passed) / float64(len(reviews)) * 100
}

// dailyStats counts reviews per UTC calendar date. Days without reviews are omitted.
func dailyStats(reviews []*types.Review) []types.DailyStat {
	byDate := map[string]int{}
	for _, r := range reviews {
		byDate[r.ReviewedAt.UTC().Format(time.DateOnly)]++
	}
	out := make([]types.DailyStat, 0, len(byDate))
	for date, n := range byDate {
		out = append(out, types.DailyStat{Date: date, CardsReviewed: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
