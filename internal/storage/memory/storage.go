package memory

import (
	"context"
	"sync"

	"github.com/garence/whackamole/internal/model"
	"github.com/garence/whackamole/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	scores        map[model.ScoreID]*model.ScoreRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		scores:        make(map[model.ScoreID]*model.ScoreRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.usernameIndex[account.Username]; ok && existing != account.ID {
		return model.ErrUsernameTaken
	}
	s.accounts[account.ID] = account
	s.usernameIndex[account.Username] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil
	}
	delete(s.accounts, id)
	delete(s.usernameIndex, account.Username)
	// Cascade: an account's records never outlive it
	for scoreID, record := range s.scores {
		if record.AccountID == id {
			delete(s.scores, scoreID)
		}
	}
	return nil
}

// Score operations

func (s *Storage) InsertScore(ctx context.Context, record *model.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[record.AccountID]; !ok {
		return model.ErrAccountNotFound
	}
	s.scores[record.ID] = record
	return nil
}

func (s *Storage) BestScore(ctx context.Context, id model.AccountID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best, found := 0, false
	for _, record := range s.scores {
		if record.AccountID != id {
			continue
		}
		if !found || record.Score > best {
			best = record.Score
		}
		found = true
	}
	if !found {
		return 0, model.ErrNoScores
	}
	return best, nil
}

func (s *Storage) BestPerAccount(ctx context.Context) ([]model.LeaderboardRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best := make(map[model.AccountID]int)
	for _, record := range s.scores {
		if current, ok := best[record.AccountID]; !ok || record.Score > current {
			best[record.AccountID] = record.Score
		}
	}
	rows := make([]model.LeaderboardRow, 0, len(best))
	for id, score := range best {
		account, ok := s.accounts[id]
		if !ok {
			continue
		}
		rows = append(rows, model.LeaderboardRow{
			AccountID: id,
			Username:  account.Username,
			BestScore: score,
		})
	}
	return rows, nil
}
