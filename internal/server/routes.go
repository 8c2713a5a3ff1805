package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Guessword API", "/openapi.json", "/docs"))
	if d.Health != nil {
		r.Mount("/healthz", d.Health)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", handleRegister(logger, d.Accounts, d.BcryptCost))
		r.Post("/login", handleLogin(logger, d.Accounts, d.Sessions, d.SessionTTL))
		r.Post("/refresh", handleRefresh(logger, d.Sessions, d.SessionTTL))
		r.Post("/logout", handleLogout(logger, d.Sessions))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(logger, d.Sessions))

			r.Get("/profile", handleProfile(logger, d.Games))
			r.Get("/history", handleHistory(logger, d.Games))
			r.Get("/leaderboard", handleLeaderboard(logger, d.Games, d.LeaderboardSize))

			r.Post("/create-game", handleCreateGame(logger, d.Games))
			r.Get("/waiting-games", handleWaitingGames(logger, d.Games))

			r.Route("/games/{gameID}", func(r chi.Router) {
				r.Post("/join", handleJoinGame(logger, d.Games))
				r.Post("/guess", handleGuess(logger, d.Games))
				r.Post("/cancel", handleCancelGame(logger, d.Games))
				r.Get("/status", handleGameStatus(logger, d.Games))
				r.Post("/pause", handlePauseGame(logger, d.Games))
				r.Post("/resume", handleResumeGame(logger, d.Games))
			})
		})
	})
}
