package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zarahshmi/backend-guesswordd/internal/game"
	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string { return t.UTC().Format(timestampFormat) }

func formatOptional(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(layout)
	return &s
}

// GameIDPath documents the {gameID} path parameter.
type GameIDPath struct {
	GameID int64 `path:"gameID"`
}

func gameIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	return id, err == nil && id > 0
}

// GameResponse is the participant view of a game. The hidden word is
// never included.
type GameResponse struct {
	ID           int64   `json:"id"`
	Player1      string  `json:"player1"`
	Player2      *string `json:"player2"`
	MaskedWord   string  `json:"masked_word"`
	WordLength   int     `json:"word_length"`
	Difficulty   string  `json:"difficulty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	StartedAt    *string `json:"started_at"`
	CurrentTurn  *string `json:"current_turn"`
	Player1Score int     `json:"player1_score"`
	Player2Score int     `json:"player2_score"`
}

func toGameResponse(g wordgame.Game) GameResponse {
	resp := GameResponse{
		ID:           g.ID,
		Player1:      g.Player1.Username,
		MaskedWord:   g.Masked,
		WordLength:   g.WordLength(),
		Difficulty:   string(g.Difficulty),
		Status:       g.Status.String(),
		CreatedAt:    formatTimestamp(g.CreatedAt),
		StartedAt:    formatOptional(g.StartedAt, timestampFormat),
		CurrentTurn:  g.TurnUsername(),
		Player1Score: g.Player1Score,
		Player2Score: g.Player2Score,
	}
	if g.Player2 != nil {
		name := g.Player2.Username
		resp.Player2 = &name
	}
	return resp
}

type CreateGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type CreateGameResponse struct {
	GameID     int64  `json:"game_id"`
	WordLength int    `json:"word_length"`
	Difficulty string `json:"difficulty"`
}

// WaitingGameItem is one entry of GET /api/waiting-games.
type WaitingGameItem struct {
	ID         int64  `json:"id"`
	Player1    string `json:"player1"`
	Difficulty string `json:"difficulty"`
	CreatedAt  string `json:"created_at"`
	Status     string `json:"status"`
	WordLength int    `json:"word_length"`
}

func handleCreateGame(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := games.Create(r.Context(), currentPlayer(r), req.Difficulty)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusCreated, CreateGameResponse{
			GameID:     created.GameID,
			WordLength: created.WordLength,
			Difficulty: string(created.Difficulty),
		})
	}
}

func handleWaitingGames(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := games.Waiting(r.Context(), currentPlayer(r))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		items := make([]WaitingGameItem, len(list))
		for i, g := range list {
			items[i] = WaitingGameItem{
				ID:         g.ID,
				Player1:    g.Player1.Username,
				Difficulty: string(g.Difficulty),
				CreatedAt:  formatTimestamp(g.CreatedAt),
				Status:     g.Status.String(),
				WordLength: g.WordLength(),
			}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleJoinGame(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := gameIDParam(r)
		if !ok {
			writeError(w, http.StatusNotFound, wordgame.ErrGameNotFound.Error())
			return
		}

		g, err := games.Join(r.Context(), currentPlayer(r), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toGameResponse(g))
	}
}

func handleGameStatus(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := gameIDParam(r)
		if !ok {
			writeError(w, http.StatusNotFound, wordgame.ErrGameNotFound.Error())
			return
		}

		g, err := games.Status(r.Context(), currentPlayer(r), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toGameResponse(g))
	}
}

// gameAction adapts a service call that only reports success.
func gameAction(logger *slog.Logger, message string, fn func(r *http.Request, actor, gameID int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := gameIDParam(r)
		if !ok {
			writeError(w, http.StatusNotFound, wordgame.ErrGameNotFound.Error())
			return
		}
		if err := fn(r, currentPlayer(r), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: message})
	}
}

func handleCancelGame(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return gameAction(logger, "Game cancelled", func(r *http.Request, actor, id int64) error {
		return games.Cancel(r.Context(), actor, id)
	})
}

func handlePauseGame(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return gameAction(logger, "Game paused", func(r *http.Request, actor, id int64) error {
		return games.Pause(r.Context(), actor, id)
	})
}

func handleResumeGame(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return gameAction(logger, "Game resumed", func(r *http.Request, actor, id int64) error {
		return games.Resume(r.Context(), actor, id)
	})
}
