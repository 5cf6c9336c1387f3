package game

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garence/whackamole/internal/dependencies/clock"
	"github.com/garence/whackamole/internal/dependencies/random"
	"github.com/garence/whackamole/internal/dependencies/timer"
	"github.com/garence/whackamole/internal/model"
	"github.com/garence/whackamole/internal/storage"
)

// Phase represents the current phase of a round
type Phase string

const (
	PhaseIdle    Phase = "idle"    // No round played yet
	PhaseRunning Phase = "running" // Countdown active, hits count
	PhaseEnded   Phase = "ended"   // Round over, score frozen
)

// Config holds timing and layout settings for the engine
type Config struct {
	RoundDuration int           // countdown ticks per round
	GridSize      int           // number of target slots
	TickInterval  time.Duration // wall time per countdown tick
	RelocateMin   time.Duration // minimum wait before the target moves
	RelocateMax   time.Duration // maximum wait before the target moves
	SubmitTimeout time.Duration // bound on the score persistence call
}

// DefaultConfig returns the standard round settings
func DefaultConfig() Config {
	return Config{
		RoundDuration: 30,
		GridSize:      9,
		TickInterval:  time.Second,
		RelocateMin:   700 * time.Millisecond,
		RelocateMax:   time.Second,
		SubmitTimeout: 10 * time.Second,
	}
}

// Snapshot is a non-blocking read of the current round state.
// LastResult is the finished round's outcome, set once its score submission
// has run; nil while Idle or Running.
type Snapshot struct {
	Phase            Phase
	Score            int
	RemainingSeconds int
	ActiveSlot       int
	LastResult       *RoundResult
}

// RoundResult reports one finished round. SubmitErr carries a failed score
// submission; the round itself still completed and Score remains valid.
type RoundResult struct {
	AccountID    model.AccountID
	Score        int
	PersonalBest int
	SubmitErr    error
}

// RoundEndFunc is notified after a round ends and its score was submitted
type RoundEndFunc func(RoundResult)

// Engine runs one timed round at a time: a countdown ticking once per
// interval and a relocator moving the target at randomized intervals. Both
// activities and RegisterHit serialize through one mutex, so no hit can be
// counted after the phase flips to Ended. Every start mints a new epoch;
// callbacks from a previous round see a stale epoch and do nothing.
type Engine struct {
	storage    storage.Storage
	clock      clock.Clock
	random     random.Random
	sched      timer.Scheduler
	logger     *slog.Logger
	cfg        Config
	onRoundEnd RoundEndFunc

	mu             sync.Mutex
	epoch          uint64
	accountID      model.AccountID
	phase          Phase
	score          int
	remaining      int
	activeSlot     int
	lastResult     *RoundResult
	cancelTick     timer.CancelFunc
	cancelRelocate timer.CancelFunc
}

// NewEngine creates an engine. onRoundEnd may be nil.
func NewEngine(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	sched timer.Scheduler,
	cfg Config,
	logger *slog.Logger,
	onRoundEnd RoundEndFunc,
) *Engine {
	if cfg.RoundDuration == 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		storage:    storage,
		clock:      clock,
		random:     random,
		sched:      sched,
		logger:     logger,
		cfg:        cfg,
		onRoundEnd: onRoundEnd,
		phase:      PhaseIdle,
	}
}

// Start begins a round for the given account (guest if zero). Calling Start
// while a round is running is a no-op; use Restart for a mid-round reset.
func (e *Engine) Start(accountID model.AccountID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == PhaseRunning {
		return
	}
	e.startLocked(accountID)
}

// Restart unconditionally begins a fresh round, cancelling any round in
// progress. Nothing from the abandoned round is persisted.
func (e *Engine) Restart(accountID model.AccountID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked(accountID)
}

// Stop cancels any round in progress and returns the engine to Idle.
// Nothing is persisted.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.epoch++
	e.cancelActivitiesLocked()
	e.phase = PhaseIdle
	e.score = 0
	e.remaining = 0
	e.lastResult = nil
}

// RegisterHit scores a tap on the given slot. It only counts while the round
// is running and the tapped slot holds the target; anything else is a no-op.
// Returns whether the hit scored.
func (e *Engine) RegisterHit(slot int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseRunning || e.remaining <= 0 {
		return false
	}
	if slot != e.activeSlot {
		return false
	}
	e.score++
	return true
}

// State returns the current round state. Never blocks on timers or storage.
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		Phase:            e.phase,
		Score:            e.score,
		RemainingSeconds: e.remaining,
		ActiveSlot:       e.activeSlot,
	}
	if e.lastResult != nil {
		res := *e.lastResult
		snap.LastResult = &res
	}
	return snap
}

// startLocked resets state and schedules both activities under a new epoch
func (e *Engine) startLocked(accountID model.AccountID) {
	e.epoch++
	e.cancelActivitiesLocked()

	e.accountID = accountID
	e.phase = PhaseRunning
	e.score = 0
	e.remaining = e.cfg.RoundDuration
	e.lastResult = nil
	e.activeSlot = e.random.Intn(e.cfg.GridSize)

	epoch := e.epoch
	e.cancelTick = e.sched.AfterFunc(e.cfg.TickInterval, func() { e.tick(epoch) })
	e.cancelRelocate = e.sched.AfterFunc(e.relocateInterval(), func() { e.relocate(epoch) })

	e.logger.Info("round started",
		slog.String("account_id", string(accountID)),
		slog.Int("duration", e.cfg.RoundDuration),
	)
}

func (e *Engine) cancelActivitiesLocked() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	if e.cancelRelocate != nil {
		e.cancelRelocate()
		e.cancelRelocate = nil
	}
}

// tick is the countdown activity: one call per elapsed tick interval
func (e *Engine) tick(epoch uint64) {
	e.mu.Lock()
	if epoch != e.epoch || e.phase != PhaseRunning {
		e.mu.Unlock()
		return
	}

	e.remaining--
	if e.remaining > 0 {
		e.cancelTick = e.sched.AfterFunc(e.cfg.TickInterval, func() { e.tick(epoch) })
		e.mu.Unlock()
		return
	}

	// Phase flips to Ended in the same tick that the countdown reaches zero.
	// Relocator cancellation is best-effort cleanup; correctness comes from
	// RegisterHit checking the phase under the same mutex.
	e.remaining = 0
	e.phase = PhaseEnded
	e.cancelActivitiesLocked()
	accountID, score := e.accountID, e.score
	e.mu.Unlock()

	go e.finishRound(epoch, accountID, score)
}

// relocate is the relocator activity: move the target, then wait again
func (e *Engine) relocate(epoch uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.epoch || e.phase != PhaseRunning {
		return
	}
	// A fresh uniform draw; repeating the previous slot is allowed
	e.activeSlot = e.random.Intn(e.cfg.GridSize)
	e.cancelRelocate = e.sched.AfterFunc(e.relocateInterval(), func() { e.relocate(epoch) })
}

func (e *Engine) relocateInterval() time.Duration {
	spread := int(e.cfg.RelocateMax-e.cfg.RelocateMin) + 1
	return e.cfg.RelocateMin + time.Duration(e.random.Intn(spread))
}

// finishRound persists the score, records the result for state reads and
// notifies the round-end callback. Runs off the engine goroutine; the Ended
// transition never waits on it.
func (e *Engine) finishRound(epoch uint64, accountID model.AccountID, score int) {
	result := RoundResult{AccountID: accountID, Score: score}

	if !accountID.IsGuest() {
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.SubmitTimeout)
		defer cancel()

		record := &model.ScoreRecord{
			ID:         model.ScoreID(uuid.NewString()),
			AccountID:  accountID,
			Score:      score,
			RecordedAt: e.clock.Now(),
		}
		if err := e.storage.InsertScore(ctx, record); err != nil {
			// The round still counts for display; only persistence failed
			result.SubmitErr = err
			e.logger.Error("score submission failed",
				slog.String("account_id", string(accountID)),
				slog.Int("score", score),
				slog.String("error", err.Error()),
			)
		}

		best, err := e.storage.BestScore(ctx, accountID)
		if err != nil && !errors.Is(err, model.ErrNoScores) {
			e.logger.Error("personal best lookup failed",
				slog.String("account_id", string(accountID)),
				slog.String("error", err.Error()),
			)
		}
		result.PersonalBest = best
	}

	// Only the round that ended may publish its result; a restart in the
	// meantime moves the epoch on
	e.mu.Lock()
	if epoch == e.epoch {
		res := result
		e.lastResult = &res
	}
	e.mu.Unlock()

	e.logger.Info("round ended",
		slog.String("account_id", string(accountID)),
		slog.Int("score", score),
		slog.Int("personal_best", result.PersonalBest),
	)

	if e.onRoundEnd != nil {
		e.onRoundEnd(result)
	}
}
