package handler

import (
	"net/http"

	"github.com/garence/whackamole/internal/api/apierr"
	"github.com/garence/whackamole/internal/api/middleware"
	"github.com/garence/whackamole/internal/api/response"
	"github.com/garence/whackamole/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	rows, err := h.leaderboardService.Ranking(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LeaderboardFromRows(rows))
}

// GetMe handles GET /api/v1/leaderboard/me
func (h *LeaderboardHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	best, err := h.leaderboardService.PersonalBest(r.Context(), account.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	rank, err := h.leaderboardService.RankFor(r.Context(), account.ID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MyStanding{
		BestScore: best,
		Rank:      rank,
	})
}
