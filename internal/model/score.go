package model

import "time"

// ScoreID uniquely identifies a score record
type ScoreID string

// ScoreRecord is one completed round's result. Immutable once created.
type ScoreRecord struct {
	ID         ScoreID
	AccountID  AccountID
	Score      int
	RecordedAt time.Time
}

// LeaderboardRow is one account's personal best paired with its username.
// Derived on demand, never stored.
type LeaderboardRow struct {
	AccountID AccountID
	Username  string
	BestScore int
}
