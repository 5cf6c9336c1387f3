package leaderboard

import (
	"context"
	"errors"
	"sort"

	"github.com/garence/whackamole/internal/model"
	"github.com/garence/whackamole/internal/storage"
)

// Service computes personal bests and the ranked leaderboard view.
// Pure reads over the score store; no caching, every call sees the
// latest records.
type Service struct {
	storage storage.Storage
}

// New creates a new leaderboard service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// PersonalBest returns the account's highest recorded score, or 0 if the
// account has no score records.
func (s *Service) PersonalBest(ctx context.Context, id model.AccountID) (int, error) {
	best, err := s.storage.BestScore(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNoScores) {
			return 0, nil
		}
		return 0, err
	}
	return best, nil
}

// Ranking returns one row per account with at least one score record,
// ordered by best score descending, then username ascending
// (case-sensitive) for ties.
func (s *Service) Ranking(ctx context.Context) ([]model.LeaderboardRow, error) {
	rows, err := s.storage.BestPerAccount(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].BestScore != rows[j].BestScore {
			return rows[i].BestScore > rows[j].BestScore
		}
		return rows[i].Username < rows[j].Username
	})

	return rows, nil
}

// RankFor returns the account's 1-based leaderboard position, or 0 if the
// account has no recorded scores (unranked).
func (s *Service) RankFor(ctx context.Context, id model.AccountID) (int, error) {
	rows, err := s.Ranking(ctx)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if row.AccountID == id {
			return i + 1, nil
		}
	}
	return 0, nil
}
