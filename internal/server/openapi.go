package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/zarahshmi/backend-guesswordd/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Request shapes that combine the path parameter with a JSON body.
type guessOperation struct {
	GameIDPath
	GuessRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Guessword API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the two-player word guessing game.")

	errorResp := func(op openapi.OperationContext, codes ...int) {
		for _, code := range codes {
			op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(code))
		}
	}

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(health.Report{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Report{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/register
	register, _ := r.NewOperationContext(http.MethodPost, "/api/register")
	register.SetSummary("Register")
	register.SetDescription("Creates a player account. Usernames are unique.")
	register.AddReqStructure(CredentialsRequest{})
	register.AddRespStructure(RegisterResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	errorResp(register, http.StatusBadRequest, http.StatusConflict)
	_ = r.AddOperation(register)

	// POST /api/login
	login, _ := r.NewOperationContext(http.MethodPost, "/api/login")
	login.SetSummary("Log in")
	login.SetDescription("Verifies credentials and issues a bearer session token.")
	login.AddReqStructure(CredentialsRequest{})
	login.AddRespStructure(TokenResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(login, http.StatusBadRequest, http.StatusUnauthorized)
	_ = r.AddOperation(login)

	// POST /api/refresh
	refresh, _ := r.NewOperationContext(http.MethodPost, "/api/refresh")
	refresh.SetSummary("Refresh session")
	refresh.SetDescription("Revokes the current bearer token and issues a new one.")
	refresh.AddRespStructure(TokenResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(refresh, http.StatusUnauthorized)
	_ = r.AddOperation(refresh)

	// POST /api/logout
	logout, _ := r.NewOperationContext(http.MethodPost, "/api/logout")
	logout.SetSummary("Log out")
	logout.SetDescription("Revokes the current bearer token.")
	logout.AddRespStructure(MessageResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(logout, http.StatusUnauthorized)
	_ = r.AddOperation(logout)

	// GET /api/profile
	profile, _ := r.NewOperationContext(http.MethodGet, "/api/profile")
	profile.SetSummary("Profile")
	profile.SetDescription("Score, level, XP, record, win rate and rank of the caller. Requires Bearer token.")
	profile.AddRespStructure(ProfileResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(profile, http.StatusUnauthorized)
	_ = r.AddOperation(profile)

	// GET /api/history
	history, _ := r.NewOperationContext(http.MethodGet, "/api/history")
	history.SetSummary("Game history")
	history.SetDescription("Every game of the caller, most recently started first. Requires Bearer token.")
	history.AddRespStructure([]HistoryItem{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(history, http.StatusUnauthorized)
	_ = r.AddOperation(history)

	// GET /api/leaderboard
	leaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	leaderboard.SetSummary("Leaderboard")
	leaderboard.SetDescription("Top players by score, then XP. Requires Bearer token.")
	leaderboard.AddReqStructure(LeaderboardQuery{})
	leaderboard.AddRespStructure([]LeaderboardItem{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(leaderboard, http.StatusBadRequest, http.StatusUnauthorized)
	_ = r.AddOperation(leaderboard)

	// POST /api/create-game
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/create-game")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Starts a waiting game on a random word of the given difficulty. Requires Bearer token.")
	createGame.AddReqStructure(CreateGameRequest{})
	createGame.AddRespStructure(CreateGameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	errorResp(createGame, http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound)
	_ = r.AddOperation(createGame)

	// GET /api/waiting-games
	waiting, _ := r.NewOperationContext(http.MethodGet, "/api/waiting-games")
	waiting.SetSummary("Open games")
	waiting.SetDescription("Joinable games plus the caller's active games. Requires Bearer token.")
	waiting.AddRespStructure([]WaitingGameItem{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(waiting, http.StatusUnauthorized)
	_ = r.AddOperation(waiting)

	// POST /api/games/{gameID}/join
	join, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/join")
	join.SetSummary("Join game")
	join.SetDescription("Seats the caller as second player and draws the first turn. Requires Bearer token.")
	join.AddReqStructure(GameIDPath{})
	join.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(join, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict)
	_ = r.AddOperation(join)

	// POST /api/games/{gameID}/guess
	guess, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/guess")
	guess.SetSummary("Guess a letter")
	guess.SetDescription("Submits one letter on the caller's turn. Requires Bearer token.")
	guess.AddReqStructure(guessOperation{})
	guess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(guess, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusNotFound, http.StatusConflict)
	_ = r.AddOperation(guess)

	// GET /api/games/{gameID}/status
	status, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/status")
	status.SetSummary("Game status")
	status.SetDescription("Current state of a game. Participants only. Requires Bearer token.")
	status.AddReqStructure(GameIDPath{})
	status.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	errorResp(status, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound)
	_ = r.AddOperation(status)

	actions := []struct {
		path, summary, description string
	}{
		{"/api/games/{gameID}/cancel", "Cancel game", "Deletes a waiting game. Creator only."},
		{"/api/games/{gameID}/pause", "Pause game", "Pauses an active game. Participants only."},
		{"/api/games/{gameID}/resume", "Resume game", "Resumes a paused game. Participants only."},
	}
	for _, a := range actions {
		op, _ := r.NewOperationContext(http.MethodPost, a.path)
		op.SetSummary(a.summary)
		op.SetDescription(a.description + " Requires Bearer token.")
		op.AddReqStructure(GameIDPath{})
		op.AddRespStructure(MessageResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		errorResp(op, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict)
		_ = r.AddOperation(op)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
