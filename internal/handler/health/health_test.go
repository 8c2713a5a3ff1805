package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zarahshmi/backend-guesswordd/internal/handler/health"
)

type mockChecker struct{ err error }

func (m mockChecker) Check(_ context.Context) error { return m.err }

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantState  string
		wantBody   map[string]string
	}{
		{
			name: "all healthy",
			checks: map[string]health.Checker{
				"sqlite":   mockChecker{},
				"sessions": mockChecker{},
			},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantBody:   map[string]string{"sqlite": "ok", "sessions": "ok"},
		},
		{
			name: "sqlite down",
			checks: map[string]health.Checker{
				"sqlite":   mockChecker{err: errors.New("locked")},
				"sessions": mockChecker{},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
			wantBody:   map[string]string{"sqlite": "error", "sessions": "ok"},
		},
		{
			name: "sessions down",
			checks: map[string]health.Checker{
				"sqlite": mockChecker{},
				"sessions": health.CheckerFunc(func(context.Context) error {
					return errors.New("refused")
				}),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
			wantBody:   map[string]string{"sqlite": "ok", "sessions": "error"},
		},
		{
			name:       "no checks",
			checks:     map[string]health.Checker{},
			wantStatus: http.StatusOK,
			wantState:  "ok",
			wantBody:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(slog.Default(), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Status string
				Checks map[string]struct{ Status string }
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}

			if body.Status != tt.wantState {
				t.Errorf("overall status = %q, want %q", body.Status, tt.wantState)
			}
			if len(body.Checks) != len(tt.wantBody) {
				t.Errorf("got %d checks, want %d", len(body.Checks), len(tt.wantBody))
			}
			for name, want := range tt.wantBody {
				if got := body.Checks[name].Status; got != want {
					t.Errorf("%s status = %q, want %q", name, got, want)
				}
			}
		})
	}
}
