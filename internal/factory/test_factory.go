package factory

import (
	"time"

	"github.com/garence/whackamole/internal/dependencies/mocks"
	"github.com/garence/whackamole/internal/services/auth"
	"github.com/garence/whackamole/internal/services/game"
	"github.com/garence/whackamole/internal/storage/memory"
	"github.com/garence/whackamole/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockScheduler *mocks.MockScheduler
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockScheduler := mocks.NewMockScheduler()

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		mockScheduler,
		auth.DefaultConfig(),
		game.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockScheduler: mockScheduler,
	}
}
