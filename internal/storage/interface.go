package storage

import (
	"context"

	"github.com/garence/whackamole/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Account operations. Usernames are unique, case-sensitive; SaveAccount
	// with an already-taken username returns model.ErrUsernameTaken.
	// DeleteAccount cascades to the account's score records.
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	DeleteAccount(ctx context.Context, id model.AccountID) error

	// Score operations. Records are immutable once inserted.
	InsertScore(ctx context.Context, record *model.ScoreRecord) error
	BestScore(ctx context.Context, id model.AccountID) (int, error)
	BestPerAccount(ctx context.Context) ([]model.LeaderboardRow, error)
}
