package resultsclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkrebs/gridline/internal/resultsclient"
	"github.com/mkrebs/gridline/pkg/models"
)

func TestGradeSpread(t *testing.T) {
	tests := []struct {
		name string
		side models.Side
		line float64
		home int
		away int
		want models.BetResult
	}{
		{"Home favorite covers", models.SideHome, -3.5, 27, 20, models.ResultWin},
		{"Home favorite fails to cover", models.SideHome, -3.5, 23, 20, models.ResultLoss},
		{"Home dog wins outright", models.SideHome, 3.5, 21, 20, models.ResultWin},
		{"Away dog covers a close loss", models.SideAway, 3.5, 23, 20, models.ResultWin},
		{"Away dog blown out", models.SideAway, 3.5, 31, 20, models.ResultLoss},
		{"Push on the number", models.SideHome, -3.0, 23, 20, models.ResultPush},
		{"Away side push", models.SideAway, 3.0, 23, 20, models.ResultPush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resultsclient.GradeSpread(tt.side, tt.line, tt.home, tt.away)
			if got != tt.want {
				t.Errorf("GradeSpread(%s, %.1f, %d-%d) = %s, want %s",
					tt.side, tt.line, tt.home, tt.away, got, tt.want)
			}
		})
	}
}

func TestClosingLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game_id":"g1","closing_line":-2.5,"closing_odds":-115,"closed_at":"2026-09-13T17:00:00Z"}`))
	}))
	defer server.Close()

	client := resultsclient.New(server.URL, "test-key", 100, 10)

	line, odds, known, err := client.ClosingLine(context.Background(), "g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !known {
		t.Fatal("known = false, want true")
	}
	if line != -2.5 || odds != -115 {
		t.Errorf("line/odds = %f/%d, want -2.5/-115", line, odds)
	}
}

func TestClosingLineNotYetClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game_id":"g1"}`))
	}))
	defer server.Close()

	client := resultsclient.New(server.URL, "test-key", 100, 10)

	_, _, known, err := client.ClosingLine(context.Background(), "g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if known {
		t.Error("known = true for an open market")
	}
}

func TestFinalResultGradesCompletedGame(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game_id":"g1","completed":true,"home_score":27,"away_score":20}`))
	}))
	defer server.Close()

	client := resultsclient.New(server.URL, "test-key", 100, 10)

	result, done, err := client.FinalResult(context.Background(), "g1", models.SideAway, 3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !done {
		t.Fatal("done = false, want true")
	}
	// Away +3.5 loses by 7.
	if result != models.ResultLoss {
		t.Errorf("result = %s, want LOSS", result)
	}
}

func TestFinalResultInProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"game_id":"g1","completed":false}`))
	}))
	defer server.Close()

	client := resultsclient.New(server.URL, "test-key", 100, 10)

	_, done, err := client.FinalResult(context.Background(), "g1", models.SideHome, -3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done {
		t.Error("done = true for a live game")
	}
}

func TestCircuitBreakerOpensOnRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := resultsclient.New(server.URL, "test-key", 100, 10)

	for i := 0; i < 5; i++ {
		client.ClosingLine(context.Background(), "g1")
	}

	// Breaker is open now; the request fails without reaching the server.
	if _, _, _, err := client.ClosingLine(context.Background(), "g1"); err == nil {
		t.Error("expected error from an open circuit breaker")
	}
}
