package redis

import (
	"fmt"

	"github.com/garence/whackamole/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "whack"

// Key generation functions for each entity type

// accountKey returns the Redis key for an Account
func accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> account_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// scoreKey returns the Redis key for a ScoreRecord
func scoreKey(id model.ScoreID) string {
	return fmt.Sprintf("%s:score:%s", keyPrefix, id)
}

// scoresForAccountIndexKey returns the Redis key for the SET of an account's score IDs
func scoresForAccountIndexKey(id model.AccountID) string {
	return fmt.Sprintf("%s:idx:scores_for_account:%s", keyPrefix, id)
}

// bestScoresKey returns the Redis key for the personal-best ZSET
// (member = account ID, score = best round score)
func bestScoresKey() string {
	return fmt.Sprintf("%s:best_scores", keyPrefix)
}
