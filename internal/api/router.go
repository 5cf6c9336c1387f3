package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garence/whackamole/internal/api/handler"
	"github.com/garence/whackamole/internal/api/middleware"
	"github.com/garence/whackamole/internal/services/auth"
	"github.com/garence/whackamole/internal/services/game"
	"github.com/garence/whackamole/internal/services/leaderboard"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	GameManager        *game.Manager
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AuthService, cfg.GameManager)
	gameHandler := handler.NewGameHandler(cfg.GameManager)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes (no auth required for registering/logging in)
	api.HandleFunc("/accounts/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/login", accountHandler.Login).Methods(http.MethodPost)

	// Protected account routes
	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(authMiddleware)
	accounts.HandleFunc("/logout", accountHandler.Logout).Methods(http.MethodPost)
	accounts.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)

	// Game routes (all require auth)
	gameRoutes := api.PathPrefix("/game").Subrouter()
	gameRoutes.Use(authMiddleware)
	gameRoutes.HandleFunc("/start", gameHandler.Start).Methods(http.MethodPost)
	gameRoutes.HandleFunc("/restart", gameHandler.Restart).Methods(http.MethodPost)
	gameRoutes.HandleFunc("/hit", gameHandler.Hit).Methods(http.MethodPost)
	gameRoutes.HandleFunc("/state", gameHandler.State).Methods(http.MethodGet)
	gameRoutes.HandleFunc("", gameHandler.Stop).Methods(http.MethodDelete)

	// Leaderboard routes
	leaderboardRoutes := api.PathPrefix("/leaderboard").Subrouter()
	leaderboardRoutes.Use(authMiddleware)
	leaderboardRoutes.HandleFunc("", leaderboardHandler.Get).Methods(http.MethodGet)
	leaderboardRoutes.HandleFunc("/me", leaderboardHandler.GetMe).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
