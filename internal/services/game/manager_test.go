package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/garence/whackamole/internal/dependencies/mocks"
	"github.com/garence/whackamole/internal/storage/memory"
	"github.com/garence/whackamole/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.manager = NewManager(
		memory.New(),
		mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		mocks.NewMockRandom(),
		mocks.NewMockScheduler(),
		DefaultConfig(),
		testutil.NopLogger(),
	)
}

func (s *ManagerSuite) TestForAccountReturnsSameEngine() {
	first := s.manager.ForAccount("acct-1")
	second := s.manager.ForAccount("acct-1")
	s.Same(first, second)
}

func (s *ManagerSuite) TestForAccountSeparatesAccounts() {
	s.NotSame(s.manager.ForAccount("acct-1"), s.manager.ForAccount("acct-2"))
}

func (s *ManagerSuite) TestRemoveStopsEngine() {
	engine := s.manager.ForAccount("acct-1")
	engine.Start("acct-1")

	s.manager.Remove("acct-1")

	s.Equal(PhaseIdle, engine.State().Phase)
	s.NotSame(engine, s.manager.ForAccount("acct-1"))
}
