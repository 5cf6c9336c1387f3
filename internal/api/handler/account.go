package handler

import (
	"encoding/json"
	"net/http"

	"github.com/garence/whackamole/internal/api/apierr"
	"github.com/garence/whackamole/internal/api/middleware"
	"github.com/garence/whackamole/internal/api/request"
	"github.com/garence/whackamole/internal/api/response"
	"github.com/garence/whackamole/internal/services/auth"
	"github.com/garence/whackamole/internal/services/game"
)

// AccountHandler handles account-related endpoints
type AccountHandler struct {
	authService *auth.Service
	gameManager *game.Manager
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(authService *auth.Service, gameManager *game.Manager) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		gameManager: gameManager,
	}
}

// Register handles POST /api/v1/accounts/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.SignUp(r.Context(), req.Username, req.Secret)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/accounts/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.SignIn(r.Context(), req.Username, req.Secret)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/accounts/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.authService.InvalidateSession(session.Token)
		// Logging out abandons any round in progress
		h.gameManager.Remove(session.AccountID)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/accounts/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	response.JSON(w, http.StatusOK, response.AccountFromModel(account))
}
