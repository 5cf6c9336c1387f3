package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameState:
		o.printGameState(v)
	case HitResult:
		o.printHitResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case MyStanding:
		o.printMyStanding(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResult combines account and token
type AuthResult struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// GameState response type
type GameState struct {
	Phase            string `json:"phase"`
	Score            int    `json:"score"`
	RemainingSeconds int    `json:"remaining_seconds"`
	ActiveSlot       int    `json:"active_slot"`
	PersonalBest     *int   `json:"personal_best,omitempty"`
	SubmitFailed     bool   `json:"submit_failed,omitempty"`
}

// HitResult response type
type HitResult struct {
	Scored bool      `json:"scored"`
	State  GameState `json:"state"`
}

// LeaderboardRow response type
type LeaderboardRow struct {
	Rank      int    `json:"rank"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	BestScore int    `json:"best_score"`
}

// Leaderboard response type
type Leaderboard struct {
	Rows []LeaderboardRow `json:"rows"`
}

// MyStanding response type
type MyStanding struct {
	BestScore int `json:"best_score"`
	Rank      int `json:"rank"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.Username, a.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printAccount(a.Account)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Phase: %s\n", g.Phase)
	fmt.Printf("Score: %d\n", g.Score)
	fmt.Printf("Time Left: %ds\n", g.RemainingSeconds)
	if g.Phase == "running" {
		fmt.Printf("Target Slot: %d\n", g.ActiveSlot)
	}
	if g.PersonalBest != nil {
		fmt.Printf("Personal Best: %d\n", *g.PersonalBest)
	}
	if g.SubmitFailed {
		fmt.Println("Warning: score could not be recorded")
	}
}

func (o *Output) printHitResult(h HitResult) {
	if h.Scored {
		fmt.Println("Hit!")
	} else {
		fmt.Println("Miss")
	}
	o.printGameState(h.State)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Rows) == 0 {
		fmt.Println("No scores recorded yet")
		return
	}

	fmt.Printf("%-5s %-20s %s\n", "Rank", "Player", "Best")
	for _, row := range l.Rows {
		fmt.Printf("%-5d %-20s %d\n", row.Rank, row.Username, row.BestScore)
	}
}

func (o *Output) printMyStanding(m MyStanding) {
	if m.Rank == 0 {
		fmt.Println("No scores recorded yet")
		return
	}
	fmt.Printf("Best Score: %d\n", m.BestScore)
	fmt.Printf("Rank: %d\n", m.Rank)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
