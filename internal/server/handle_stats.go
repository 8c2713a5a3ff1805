package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/zarahshmi/backend-guesswordd/internal/game"
)

const historyTimeFormat = "2006-01-02 15:04:05"

type ProfileResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Score       int    `json:"score"`
	Level       int    `json:"level"`
	XP          int    `json:"xp"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	WinRate     string `json:"win_rate"`
	Rank        int    `json:"rank"`
}

type HistoryItem struct {
	ID            int64   `json:"id"`
	Difficulty    string  `json:"difficulty"`
	Status        string  `json:"status"`
	MaskedWord    string  `json:"masked_word"`
	StartedAt     *string `json:"started_at"`
	Opponent      *string `json:"opponent"`
	Result        *string `json:"result"`
	YourScore     int     `json:"your_score"`
	OpponentScore int     `json:"opponent_score"`
}

type LeaderboardItem struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	WinRate  string `json:"win_rate"`
	Rank     int    `json:"rank"`
}

// LeaderboardQuery documents the optional limit query parameter.
type LeaderboardQuery struct {
	Limit int `query:"limit"`
}

func handleProfile(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := games.Profile(r.Context(), currentPlayer(r))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{
			ID:          p.Player.ID,
			Username:    p.Player.Username,
			Score:       p.Player.Score,
			Level:       p.Player.Level,
			XP:          p.Player.XP,
			GamesPlayed: p.Record.Played,
			Wins:        p.Record.Wins,
			Losses:      p.Record.Losses,
			Draws:       p.Record.Draws,
			WinRate:     p.WinRate,
			Rank:        p.Rank,
		})
	}
}

func handleHistory(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := games.History(r.Context(), currentPlayer(r))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		items := make([]HistoryItem, len(entries))
		for i, e := range entries {
			item := HistoryItem{
				ID:            e.Game.ID,
				Difficulty:    string(e.Game.Difficulty),
				Status:        e.Game.Status.String(),
				MaskedWord:    e.Game.Masked,
				StartedAt:     formatOptional(e.Game.StartedAt, historyTimeFormat),
				YourScore:     e.YourScore,
				OpponentScore: e.OpponentScore,
			}
			if e.Opponent != nil {
				name := e.Opponent.Username
				item.Opponent = &name
			}
			if e.Result != "" {
				result := string(e.Result)
				item.Result = &result
			}
			items[i] = item
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleLeaderboard(logger *slog.Logger, games *game.Service, size int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := size
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}

		entries, err := games.Leaderboard(r.Context(), limit)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		items := make([]LeaderboardItem, len(entries))
		for i, e := range entries {
			items[i] = LeaderboardItem{
				ID:       e.Player.ID,
				Username: e.Player.Username,
				Score:    e.Player.Score,
				Level:    e.Player.Level,
				XP:       e.Player.XP,
				WinRate:  e.WinRate,
				Rank:     e.Rank,
			}
		}
		writeJSON(w, http.StatusOK, items)
	}
}
