package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/garence/whackamole/internal/model"
	"github.com/garence/whackamole/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// Claim the username atomically; SetNX loses against any concurrent claim
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(account.Username), string(account.ID), 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		// Already indexed; only a resave of the same account may proceed
		existing, err := s.client.Get(ctx, usernameIndexKey(account.Username)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if existing != string(account.ID) {
			return model.ErrUsernameTaken
		}
	}

	return s.client.Set(ctx, accountKey(account.ID), data, 0).Err()
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	accountIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.AccountID(accountIDStr))
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	scoreIDs, err := s.client.SMembers(ctx, scoresForAccountIndexKey(id)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	// Cascade: scores and leaderboard membership go with the account
	pipe := s.client.Pipeline()
	for _, scoreID := range scoreIDs {
		pipe.Del(ctx, scoreKey(model.ScoreID(scoreID)))
	}
	pipe.Del(ctx, scoresForAccountIndexKey(id))
	pipe.ZRem(ctx, bestScoresKey(), string(id))
	pipe.Del(ctx, usernameIndexKey(account.Username))
	pipe.Del(ctx, accountKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Score operations

func (s *Storage) InsertScore(ctx context.Context, record *model.ScoreRecord) error {
	exists, err := s.client.Exists(ctx, accountKey(record.AccountID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrAccountNotFound
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// ZAddGT keeps the ZSET at the per-account maximum
	pipe := s.client.Pipeline()
	pipe.Set(ctx, scoreKey(record.ID), data, 0)
	pipe.SAdd(ctx, scoresForAccountIndexKey(record.AccountID), string(record.ID))
	pipe.ZAddGT(ctx, bestScoresKey(), redis.Z{
		Score:  float64(record.Score),
		Member: string(record.AccountID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) BestScore(ctx context.Context, id model.AccountID) (int, error) {
	best, err := s.client.ZScore(ctx, bestScoresKey(), string(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, model.ErrNoScores
		}
		return 0, err
	}
	return int(best), nil
}

func (s *Storage) BestPerAccount(ctx context.Context) ([]model.LeaderboardRow, error) {
	members, err := s.client.ZRangeWithScores(ctx, bestScoresKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]model.LeaderboardRow, 0, len(members))
	for _, member := range members {
		id := model.AccountID(member.Member.(string))
		account, err := s.GetAccount(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrAccountNotFound) {
				continue
			}
			return nil, err
		}
		rows = append(rows, model.LeaderboardRow{
			AccountID: id,
			Username:  account.Username,
			BestScore: int(member.Score),
		})
	}
	return rows, nil
}
