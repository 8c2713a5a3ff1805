package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zarahshmi/backend-guesswordd/internal/session"
	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

// CredentialsRequest is the request body for register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type RegisterResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

type TokenResponse struct {
	Access    string `json:"access"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

func newTokenResponse(token string, ttl time.Duration) TokenResponse {
	return TokenResponse{Access: token, TokenType: "Bearer", ExpiresIn: int64(ttl / time.Second)}
}

func readCredentials(r *http.Request) (CredentialsRequest, error) {
	var req CredentialsRequest
	if err := readJSON(r, &req); err != nil {
		return req, err
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return req, wordgame.ErrMissingField
	}
	return req, nil
}

func handleRegister(logger *slog.Logger, accounts Accounts, cost int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readCredentials(r)
		if errors.Is(err, wordgame.ErrMissingField) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			writeError(w, http.StatusBadRequest, "password is too long")
			return
		}
		if err != nil {
			logger.Error("hashing password", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		p, err := accounts.CreatePlayer(r.Context(), req.Username, string(hash))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		logger.Info("player registered", "player_id", p.ID)
		writeJSON(w, http.StatusCreated, RegisterResponse{
			Success: true,
			User:    UserInfo{ID: p.ID, Username: p.Username},
		})
	}
}

func handleLogin(logger *slog.Logger, accounts Accounts, sessions session.Store, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := readCredentials(r)
		if errors.Is(err, wordgame.ErrMissingField) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id, hash, err := accounts.Credentials(r.Context(), req.Username)
		if errors.Is(err, wordgame.ErrPlayerNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			logger.Error("loading credentials", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := sessions.Create(r.Context(), id)
		if err != nil {
			logger.Error("creating session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, newTokenResponse(token, ttl))
	}
}

func handleRefresh(logger *slog.Logger, sessions session.Store, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		next, _, err := session.Rotate(r.Context(), sessions, token)
		if errors.Is(err, session.ErrInvalid) {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		if err != nil {
			logger.Error("rotating session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, newTokenResponse(next, ttl))
	}
}

func handleLogout(logger *slog.Logger, sessions session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}
		if err := sessions.Revoke(r.Context(), token); err != nil {
			logger.Error("revoking session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
	}
}
