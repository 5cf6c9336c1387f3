package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garence/whackamole/internal/services/game"
)

// Full round lifecycle through the wired application: sign up, play a round
// with mock-driven time, verify the persisted score and leaderboard view.

func TestFullRoundLifecycle(t *testing.T) {
	app := NewTestApp()
	ctx := context.Background()

	session, err := app.AuthService.SignUp(ctx, "alice", "pw1")
	require.NoError(t, err)

	engine := app.GameManager.ForAccount(session.AccountID)
	app.MockRandom.QueueIntn(4, 0) // target slot, relocation wait offset
	engine.Start(session.AccountID)

	for i := 0; i < 5; i++ {
		require.True(t, engine.RegisterHit(4))
	}
	assert.False(t, engine.RegisterHit(3))

	app.MockScheduler.Advance(30 * time.Second)
	require.Equal(t, game.PhaseEnded, engine.State().Phase)

	// Submission runs off the engine goroutine; poll until it lands
	require.Eventually(t, func() bool {
		best, err := app.LeaderboardService.PersonalBest(ctx, session.AccountID)
		return err == nil && best == 5
	}, time.Second, 10*time.Millisecond)

	rows, err := app.LeaderboardService.Ranking(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, 5, rows[0].BestScore)

	rank, err := app.LeaderboardService.RankFor(ctx, session.AccountID)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestZeroHitRoundPersistsZero(t *testing.T) {
	app := NewTestApp()
	ctx := context.Background()

	session, err := app.AuthService.SignUp(ctx, "alice", "pw1")
	require.NoError(t, err)

	engine := app.GameManager.ForAccount(session.AccountID)
	engine.Start(session.AccountID)

	app.MockScheduler.Advance(30 * time.Second)
	require.Equal(t, game.PhaseEnded, engine.State().Phase)
	assert.Equal(t, 0, engine.State().Score)

	require.Eventually(t, func() bool {
		rows, err := app.LeaderboardService.Ranking(ctx)
		return err == nil && len(rows) == 1 && rows[0].BestScore == 0
	}, time.Second, 10*time.Millisecond)
}

func TestTwoPlayersRankedAcrossRounds(t *testing.T) {
	app := NewTestApp()
	ctx := context.Background()

	alice, err := app.AuthService.SignUp(ctx, "alice", "pw1")
	require.NoError(t, err)
	bob, err := app.AuthService.SignUp(ctx, "bob", "pw2")
	require.NoError(t, err)

	// Alice scores 2, Bob scores 6
	engine := app.GameManager.ForAccount(alice.AccountID)
	engine.Start(alice.AccountID)
	require.True(t, engine.RegisterHit(0))
	require.True(t, engine.RegisterHit(0))
	app.MockScheduler.Advance(30 * time.Second)

	engine = app.GameManager.ForAccount(bob.AccountID)
	engine.Start(bob.AccountID)
	for i := 0; i < 6; i++ {
		require.True(t, engine.RegisterHit(0))
	}
	app.MockScheduler.Advance(30 * time.Second)

	require.Eventually(t, func() bool {
		rows, err := app.LeaderboardService.Ranking(ctx)
		return err == nil && len(rows) == 2
	}, time.Second, 10*time.Millisecond)

	rows, err := app.LeaderboardService.Ranking(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", rows[0].Username)
	assert.Equal(t, 6, rows[0].BestScore)
	assert.Equal(t, "alice", rows[1].Username)
	assert.Equal(t, 2, rows[1].BestScore)
}
