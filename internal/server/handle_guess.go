package server

import (
	"log/slog"
	"net/http"

	"github.com/zarahshmi/backend-guesswordd/internal/game"
	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

type GuessRequest struct {
	Letter string `json:"letter"`
}

type GuessResponse struct {
	MaskedWord string  `json:"masked_word"`
	Correct    bool    `json:"correct"`
	NextTurn   *string `json:"next_turn"`
	GameStatus string  `json:"game_status"`
	YourScore  int     `json:"your_score"`
}

func handleGuess(logger *slog.Logger, games *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := gameIDParam(r)
		if !ok {
			writeError(w, http.StatusNotFound, wordgame.ErrGameNotFound.Error())
			return
		}

		var req GuessRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		out, err := games.Guess(r.Context(), currentPlayer(r), id, req.Letter)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, GuessResponse{
			MaskedWord: out.Masked,
			Correct:    out.Correct,
			NextTurn:   out.NextTurn,
			GameStatus: out.Status.String(),
			YourScore:  out.YourScore,
		})
	}
}
