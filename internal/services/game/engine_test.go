package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/garence/whackamole/internal/dependencies/mocks"
	"github.com/garence/whackamole/internal/model"
	"github.com/garence/whackamole/internal/storage"
	"github.com/garence/whackamole/internal/storage/memory"
	"github.com/garence/whackamole/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	sched   *mocks.MockScheduler
	results chan RoundResult
	engine  *Engine
	ctx     context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.sched = mocks.NewMockScheduler()
	s.results = make(chan RoundResult, 1)
	s.engine = s.newEngine(s.storage)
	s.ctx = context.Background()
}

func (s *EngineSuite) newEngine(store storage.Storage) *Engine {
	return NewEngine(store, s.clock, s.random, s.sched, DefaultConfig(), testutil.NopLogger(), func(res RoundResult) {
		s.results <- res
	})
}

func (s *EngineSuite) saveAccount(id model.AccountID) {
	s.Require().NoError(s.storage.SaveAccount(s.ctx, &model.Account{
		ID:       id,
		Username: "alice",
	}))
}

func (s *EngineSuite) waitResult() RoundResult {
	select {
	case res := <-s.results:
		return res
	case <-time.After(time.Second):
		s.FailNow("round end callback never fired")
		return RoundResult{}
	}
}

// queueDraws queues one slot draw followed by one relocation-interval draw,
// matching the order the engine consumes them on start and on relocation.
func (s *EngineSuite) queueDraws(slot, intervalOffset int) {
	s.random.QueueIntn(slot, intervalOffset)
}

func (s *EngineSuite) TestStartInitializesRound() {
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	state := s.engine.State()
	s.Equal(PhaseRunning, state.Phase)
	s.Equal(0, state.Score)
	s.Equal(30, state.RemainingSeconds)
	s.Equal(4, state.ActiveSlot)
}

func (s *EngineSuite) TestHitOnTargetScores() {
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	s.True(s.engine.RegisterHit(4))
	s.True(s.engine.RegisterHit(4))
	s.Equal(2, s.engine.State().Score)
}

func (s *EngineSuite) TestHitOnWrongSlotDoesNotScore() {
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	s.False(s.engine.RegisterHit(5))
	s.Equal(0, s.engine.State().Score)
}

func (s *EngineSuite) TestHitBeforeStartIsNoop() {
	s.False(s.engine.RegisterHit(0))
	s.Equal(PhaseIdle, s.engine.State().Phase)
}

func (s *EngineSuite) TestCountdownDecrementsOncePerTick() {
	s.queueDraws(4, 100)
	s.engine.Start("acct-1")

	s.sched.Advance(time.Second)
	s.Equal(29, s.engine.State().RemainingSeconds)

	s.sched.Advance(3 * time.Second)
	s.Equal(26, s.engine.State().RemainingSeconds)
}

func (s *EngineSuite) TestRoundEndsWhenCountdownReachesZero() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	s.sched.Advance(30 * time.Second)

	state := s.engine.State()
	s.Equal(PhaseEnded, state.Phase)
	s.Equal(0, state.RemainingSeconds)
	s.waitResult()
}

func (s *EngineSuite) TestRemainingNeverGoesNegative() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	s.sched.Advance(45 * time.Second)
	s.Equal(0, s.engine.State().RemainingSeconds)
	s.waitResult()
}

func (s *EngineSuite) TestScoreFrozenAfterEnd() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.True(s.engine.RegisterHit(4))

	s.sched.Advance(30 * time.Second)
	s.waitResult()

	s.False(s.engine.RegisterHit(4))
	s.Equal(1, s.engine.State().Score)
}

func (s *EngineSuite) TestRelocatorMovesTarget() {
	// Slot 4, relocation due at 700ms; relocation draws slot 7, next wait 700ms
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.queueDraws(7, 0)

	s.sched.Advance(700 * time.Millisecond)
	s.Equal(7, s.engine.State().ActiveSlot)
}

func (s *EngineSuite) TestRelocationDoesNotAffectScore() {
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.True(s.engine.RegisterHit(4))

	s.queueDraws(7, 0)
	s.sched.Advance(700 * time.Millisecond)

	s.Equal(1, s.engine.State().Score)
	s.False(s.engine.RegisterHit(4))
	s.True(s.engine.RegisterHit(7))
}

func (s *EngineSuite) TestActivitiesStopAfterEnd() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	s.sched.Advance(30 * time.Second)
	s.waitResult()

	s.Equal(0, s.sched.Pending())
}

func (s *EngineSuite) TestStartWhileRunningIsNoop() {
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.True(s.engine.RegisterHit(4))

	s.engine.Start("acct-1")

	state := s.engine.State()
	s.Equal(1, state.Score)
	s.Equal(30, state.RemainingSeconds)
}

func (s *EngineSuite) TestRestartMidRoundDiscardsOldTicks() {
	s.queueDraws(4, 100)
	s.engine.Start("acct-1")

	s.sched.Advance(500 * time.Millisecond)
	s.queueDraws(2, 300)
	s.engine.Restart("acct-1")

	// The old round's tick (due at 1s) must not touch the new round;
	// the new round's relocation (due with the tick) redraws slot 2
	s.queueDraws(2, 300)
	s.sched.Advance(time.Second)
	state := s.engine.State()
	s.Equal(29, state.RemainingSeconds)
	s.Equal(2, state.ActiveSlot)
}

func (s *EngineSuite) TestRestartResetsScore() {
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.True(s.engine.RegisterHit(4))

	s.queueDraws(4, 0)
	s.engine.Restart("acct-1")
	s.Equal(0, s.engine.State().Score)
}

func (s *EngineSuite) TestStopReturnsToIdle() {
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	s.engine.Stop()

	s.Equal(PhaseIdle, s.engine.State().Phase)
	s.Equal(0, s.sched.Pending())

	rows, err := s.storage.BestPerAccount(s.ctx)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *EngineSuite) TestRoundWithNoHitsPersistsZeroScore() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")

	s.sched.Advance(30 * time.Second)
	res := s.waitResult()

	s.Equal(model.AccountID("acct-1"), res.AccountID)
	s.Equal(0, res.Score)
	s.NoError(res.SubmitErr)

	best, err := s.storage.BestScore(s.ctx, "acct-1")
	s.Require().NoError(err)
	s.Equal(0, best)
}

func (s *EngineSuite) TestRoundPersistsScoreAndPersonalBest() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	for i := 0; i < 5; i++ {
		s.True(s.engine.RegisterHit(4))
	}

	s.sched.Advance(30 * time.Second)
	res := s.waitResult()

	s.Equal(5, res.Score)
	s.Equal(5, res.PersonalBest)

	best, err := s.storage.BestScore(s.ctx, "acct-1")
	s.Require().NoError(err)
	s.Equal(5, best)
}

func (s *EngineSuite) TestPersonalBestSurvivesWorseRound() {
	s.saveAccount("acct-1")
	s.Require().NoError(s.storage.InsertScore(s.ctx, &model.ScoreRecord{
		ID:        "score-0",
		AccountID: "acct-1",
		Score:     9,
	}))

	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.True(s.engine.RegisterHit(4))

	s.sched.Advance(30 * time.Second)
	res := s.waitResult()

	s.Equal(1, res.Score)
	s.Equal(9, res.PersonalBest)
}

func (s *EngineSuite) TestGuestRoundIsNotPersisted() {
	s.queueDraws(4, 0)
	s.engine.Start("")

	s.sched.Advance(30 * time.Second)
	res := s.waitResult()

	s.True(res.AccountID.IsGuest())
	s.NoError(res.SubmitErr)

	rows, err := s.storage.BestPerAccount(s.ctx)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *EngineSuite) TestStateCarriesResultAfterEnd() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	for i := 0; i < 5; i++ {
		s.True(s.engine.RegisterHit(4))
	}

	s.sched.Advance(30 * time.Second)
	s.waitResult()

	state := s.engine.State()
	s.Require().NotNil(state.LastResult)
	s.Equal(5, state.LastResult.Score)
	s.Equal(5, state.LastResult.PersonalBest)
	s.NoError(state.LastResult.SubmitErr)
}

func (s *EngineSuite) TestStartClearsPreviousResult() {
	s.saveAccount("acct-1")
	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.sched.Advance(30 * time.Second)
	s.waitResult()
	s.Require().NotNil(s.engine.State().LastResult)

	s.queueDraws(4, 0)
	s.engine.Start("acct-1")
	s.Nil(s.engine.State().LastResult)
}

// failingStorage makes every insert fail while reads keep working
type failingStorage struct {
	storage.Storage
	insertErr error
}

func (f *failingStorage) InsertScore(ctx context.Context, record *model.ScoreRecord) error {
	return f.insertErr
}

func (s *EngineSuite) TestSubmitFailureIsReportedNotFatal() {
	s.saveAccount("acct-1")
	insertErr := errors.New("store unavailable")
	engine := s.newEngine(&failingStorage{Storage: s.storage, insertErr: insertErr})

	s.queueDraws(4, 0)
	engine.Start("acct-1")
	s.True(engine.RegisterHit(4))

	s.sched.Advance(30 * time.Second)
	res := s.waitResult()

	// Round completes and the score is still displayable
	state := engine.State()
	s.Equal(PhaseEnded, state.Phase)
	s.Equal(1, res.Score)
	s.ErrorIs(res.SubmitErr, insertErr)

	// The failure is visible through the state read as well
	s.Require().NotNil(state.LastResult)
	s.ErrorIs(state.LastResult.SubmitErr, insertErr)
}
