package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer captures the last request and replies with a fixed body
type recordingServer struct {
	*httptest.Server
	method string
	path   string
	auth   string
	body   map[string]any
}

func newRecordingServer(t *testing.T, status int, response any) *recordingServer {
	t.Helper()

	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.method = r.Method
		rs.path = r.URL.Path
		rs.auth = r.Header.Get("Authorization")
		rs.body = nil
		_ = json.NewDecoder(r.Body).Decode(&rs.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(rs.Close)
	return rs
}

func TestRegisterSendsCredentials(t *testing.T) {
	srv := newRecordingServer(t, http.StatusCreated, AuthResult{
		Account:      Account{ID: "a_1", Username: "alice"},
		SessionToken: "sess_abc",
	})
	c := NewClient(srv.URL, "")

	result, err := c.Register("alice", "pw1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/api/v1/accounts/register", srv.path)
	assert.Equal(t, map[string]any{"username": "alice", "secret": "pw1"}, srv.body)
	assert.Equal(t, "sess_abc", result.SessionToken)
}

func TestHitSendsSlotWithToken(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, HitResult{
		Scored: true,
		State:  GameState{Phase: "running", Score: 1, RemainingSeconds: 29, ActiveSlot: 4},
	})
	c := NewClient(srv.URL, "sess_abc")

	result, err := c.Hit(4)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, "/api/v1/game/hit", srv.path)
	assert.Equal(t, "Bearer sess_abc", srv.auth)
	assert.Equal(t, map[string]any{"slot": float64(4)}, srv.body)
	assert.True(t, result.Scored)
	assert.Equal(t, 1, result.State.Score)
}

func TestStopGameUsesDelete(t *testing.T) {
	srv := newRecordingServer(t, http.StatusNoContent, nil)
	c := NewClient(srv.URL, "sess_abc")

	require.NoError(t, c.StopGame())
	assert.Equal(t, http.MethodDelete, srv.method)
	assert.Equal(t, "/api/v1/game", srv.path)
}

func TestLeaderboardParsesRows(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, Leaderboard{
		Rows: []LeaderboardRow{
			{Rank: 1, AccountID: "a_2", Username: "bob", BestScore: 6},
			{Rank: 2, AccountID: "a_1", Username: "alice", BestScore: 2},
		},
	})
	c := NewClient(srv.URL, "sess_abc")

	result, err := c.Leaderboard()
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, srv.method)
	assert.Equal(t, "/api/v1/leaderboard", srv.path)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "bob", result.Rows[0].Username)
}

func TestErrorResponseSurfacesAPICode(t *testing.T) {
	srv := newRecordingServer(t, http.StatusConflict, ErrorResponse{
		Error: APIError{Code: "USERNAME_EXISTS", Message: "Username already exists"},
	})
	c := NewClient(srv.URL, "")

	_, err := c.Register("alice", "pw1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USERNAME_EXISTS")
	assert.Contains(t, err.Error(), "Username already exists")
}
