package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zarahshmi/backend-guesswordd/internal/session"
)

type ctxKey int

const ctxKeyPlayer ctxKey = iota

var errNoToken = errors.New("missing bearer token")

func bearerToken(r *http.Request) (string, error) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", errNoToken
	}
	return token, nil
}

// authMiddleware resolves the bearer token to a player id and stores it
// in the request context.
func authMiddleware(logger *slog.Logger, sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			playerID, err := sessions.Lookup(r.Context(), token)
			if errors.Is(err, session.ErrInvalid) {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}
			if err != nil {
				logger.Error("session lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPlayer, playerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func playerFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyPlayer).(int64)
	return id, ok
}

// currentPlayer is only valid behind authMiddleware.
func currentPlayer(r *http.Request) int64 {
	id, _ := playerFrom(r.Context())
	return id
}
