package response

import (
	"github.com/garence/whackamole/internal/model"
	"github.com/garence/whackamole/internal/services/auth"
	"github.com/garence/whackamole/internal/services/game"
)

// Account represents an account in API responses
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:       string(a.ID),
		Username: a.Username,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Account:      AccountFromModel(&s.Account),
		SessionToken: s.Token,
	}
}

// GameState is the response for the game state endpoint. PersonalBest and
// SubmitFailed are present once the finished round's score submission has
// run; SubmitFailed means the score shown was not recorded.
type GameState struct {
	Phase            string `json:"phase"`
	Score            int    `json:"score"`
	RemainingSeconds int    `json:"remaining_seconds"`
	ActiveSlot       int    `json:"active_slot"`
	PersonalBest     *int   `json:"personal_best,omitempty"`
	SubmitFailed     bool   `json:"submit_failed,omitempty"`
}

// GameStateFromSnapshot converts an engine snapshot
func GameStateFromSnapshot(s game.Snapshot) GameState {
	out := GameState{
		Phase:            string(s.Phase),
		Score:            s.Score,
		RemainingSeconds: s.RemainingSeconds,
		ActiveSlot:       s.ActiveSlot,
	}
	if s.LastResult != nil {
		best := s.LastResult.PersonalBest
		out.PersonalBest = &best
		out.SubmitFailed = s.LastResult.SubmitErr != nil
	}
	return out
}

// HitResult is the response for the hit endpoint
type HitResult struct {
	Scored bool      `json:"scored"`
	State  GameState `json:"state"`
}

// LeaderboardRow represents one ranked leaderboard entry
type LeaderboardRow struct {
	Rank      int    `json:"rank"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Rows []LeaderboardRow `json:"rows"`
}

// LeaderboardFromRows converts ranked model rows, assigning 1-based ranks
func LeaderboardFromRows(rows []model.LeaderboardRow) Leaderboard {
	out := Leaderboard{Rows: make([]LeaderboardRow, 0, len(rows))}
	for i, row := range rows {
		out.Rows = append(out.Rows, LeaderboardRow{
			Rank:      i + 1,
			AccountID: string(row.AccountID),
			Username:  row.Username,
			BestScore: row.BestScore,
		})
	}
	return out
}

// MyStanding is the response for the caller's own leaderboard entry.
// Rank is 0 when the caller has no recorded scores.
type MyStanding struct {
	BestScore int `json:"best_score"`
	Rank      int `json:"rank"`
}
