package game

import (
	"log/slog"
	"sync"

	"github.com/garence/whackamole/internal/dependencies/clock"
	"github.com/garence/whackamole/internal/dependencies/random"
	"github.com/garence/whackamole/internal/dependencies/timer"
	"github.com/garence/whackamole/internal/model"
	"github.com/garence/whackamole/internal/storage"
)

// Manager owns one engine per account for the application shell. Engines are
// created on first use and discarded when the account's session goes away.
type Manager struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	sched   timer.Scheduler
	cfg     Config
	logger  *slog.Logger

	mu      sync.RWMutex
	engines map[model.AccountID]*Engine
}

// NewManager creates a new Manager
func NewManager(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	sched timer.Scheduler,
	cfg Config,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		storage: storage,
		clock:   clock,
		random:  random,
		sched:   sched,
		cfg:     cfg,
		logger:  logger,
		engines: make(map[model.AccountID]*Engine),
	}
}

// ForAccount returns the account's engine, creating it if needed
func (m *Manager) ForAccount(id model.AccountID) *Engine {
	m.mu.RLock()
	engine, ok := m.engines[id]
	m.mu.RUnlock()
	if ok {
		return engine
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if engine, ok := m.engines[id]; ok {
		return engine
	}
	engine = NewEngine(m.storage, m.clock, m.random, m.sched, m.cfg, m.logger, nil)
	m.engines[id] = engine
	return engine
}

// Remove stops and discards the account's engine, if any
func (m *Manager) Remove(id model.AccountID) {
	m.mu.Lock()
	engine, ok := m.engines[id]
	delete(m.engines, id)
	m.mu.Unlock()
	if ok {
		engine.Stop()
	}
}
