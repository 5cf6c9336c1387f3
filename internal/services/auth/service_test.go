package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/garence/whackamole/internal/dependencies/mocks"
	"github.com/garence/whackamole/internal/storage/memory"
	"github.com/garence/whackamole/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// SignUp tests

func (s *ServiceSuite) TestSignUpSucceeds() {
	session, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.AccountID)
	s.Equal("alice", session.Account.Username)
}

func (s *ServiceSuite) TestSignUpPersistsAccount() {
	session, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	account, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(session.AccountID, account.ID)
	s.NotEmpty(account.SecretHash)
	s.NotEqual("pw1", account.SecretHash) // Should be hashed
}

func (s *ServiceSuite) TestSignUpTrimsUsername() {
	session, err := s.service.SignUp(s.ctx, "  alice  ", "pw1")
	s.Require().NoError(err)
	s.Equal("alice", session.Account.Username)
}

func (s *ServiceSuite) TestSignUpRejectsEmptyUsername() {
	_, err := s.service.SignUp(s.ctx, "   ", "pw1")
	s.ErrorIs(err, ErrEmptyCredentials)
}

func (s *ServiceSuite) TestSignUpRejectsEmptySecret() {
	_, err := s.service.SignUp(s.ctx, "alice", "")
	s.ErrorIs(err, ErrEmptyCredentials)
}

func (s *ServiceSuite) TestSignUpRejectsDuplicateUsername() {
	_, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	_, err = s.service.SignUp(s.ctx, "alice", "pw2")
	s.ErrorIs(err, ErrUsernameExists)
}

// SignIn tests

func (s *ServiceSuite) TestSignUpThenSignInRoundTrip() {
	created, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	session, err := s.service.SignIn(s.ctx, "alice", "pw1")
	s.Require().NoError(err)
	s.Equal(created.AccountID, session.AccountID)
}

func (s *ServiceSuite) TestSignInWrongSecret() {
	_, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	_, err = s.service.SignIn(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestSignInUnknownUsernameIsIndistinguishable() {
	_, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	_, wrongSecret := s.service.SignIn(s.ctx, "alice", "wrong")
	_, unknownUser := s.service.SignIn(s.ctx, "nobody", "pw1")
	s.ErrorIs(wrongSecret, ErrInvalidCredentials)
	s.ErrorIs(unknownUser, ErrInvalidCredentials)
	s.Equal(wrongSecret.Error(), unknownUser.Error())
}

func (s *ServiceSuite) TestSignInUsernameIsCaseSensitive() {
	_, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	_, err = s.service.SignIn(s.ctx, "Alice", "pw1")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestSignInRejectsEmptyInput() {
	_, err := s.service.SignIn(s.ctx, "", "pw1")
	s.ErrorIs(err, ErrEmptyCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSession() {
	session, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.AccountID, validated.AccountID)
}

func (s *ServiceSuite) TestValidateSessionUnknownToken() {
	_, err := s.service.ValidateSession("bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpires() {
	session, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	session, err := s.service.SignUp(s.ctx, "alice", "pw1")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}
