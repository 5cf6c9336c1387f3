package handler

import (
	"encoding/json"
	"net/http"

	"github.com/garence/whackamole/internal/api/apierr"
	"github.com/garence/whackamole/internal/api/middleware"
	"github.com/garence/whackamole/internal/api/request"
	"github.com/garence/whackamole/internal/api/response"
	"github.com/garence/whackamole/internal/services/game"
)

// GameHandler handles game round endpoints
type GameHandler struct {
	gameManager *game.Manager
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameManager *game.Manager) *GameHandler {
	return &GameHandler{
		gameManager: gameManager,
	}
}

func (h *GameHandler) engine(r *http.Request) *game.Engine {
	account := middleware.MustGetAccount(r.Context())
	return h.gameManager.ForAccount(account.ID)
}

// Start handles POST /api/v1/game/start.
// Starting while a round is already running changes nothing.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	engine := h.gameManager.ForAccount(account.ID)
	engine.Start(account.ID)
	response.JSON(w, http.StatusOK, response.GameStateFromSnapshot(engine.State()))
}

// Restart handles POST /api/v1/game/restart, resetting any round in progress
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	engine := h.gameManager.ForAccount(account.ID)
	engine.Restart(account.ID)
	response.JSON(w, http.StatusOK, response.GameStateFromSnapshot(engine.State()))
}

// Hit handles POST /api/v1/game/hit. Hits outside a running round or on the
// wrong slot simply don't score; they are not errors.
func (h *GameHandler) Hit(w http.ResponseWriter, r *http.Request) {
	var req request.HitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	engine := h.engine(r)
	scored := engine.RegisterHit(req.Slot)
	response.JSON(w, http.StatusOK, response.HitResult{
		Scored: scored,
		State:  response.GameStateFromSnapshot(engine.State()),
	})
}

// State handles GET /api/v1/game/state
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.GameStateFromSnapshot(h.engine(r).State()))
}

// Stop handles DELETE /api/v1/game, abandoning any round in progress
func (h *GameHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.engine(r).Stop()
	response.NoContent(w)
}
