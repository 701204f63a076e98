// Package resultsclient fetches closing lines and final scores from the
// odds API. Requests are rate limited and run behind a circuit breaker so a
// flapping upstream cannot stall CLV resolution.
package resultsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/mkrebs/gridline/pkg/models"
)

// Client implements contracts.ClosingSource over the odds API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// New creates a results client.
func New(baseURL, apiKey string, ratePerSecond float64, burst int) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "results-api",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}),
	}
}

type closingLinePayload struct {
	GameID      string   `json:"game_id"`
	ClosingLine *float64 `json:"closing_line"`
	ClosingOdds *int     `json:"closing_odds"`
	ClosedAt    string   `json:"closed_at"`
}

type resultPayload struct {
	GameID    string `json:"game_id"`
	Completed bool   `json:"completed"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

// ClosingLine fetches the closing line for a game. known is false when the
// market has not closed yet.
func (c *Client) ClosingLine(ctx context.Context, gameID string) (float64, int, bool, error) {
	var payload closingLinePayload
	path := fmt.Sprintf("/v1/closing-lines?apiKey=%s&gameId=%s", url.QueryEscape(c.apiKey), url.QueryEscape(gameID))
	if err := c.get(ctx, path, &payload); err != nil {
		return 0, 0, false, err
	}
	if payload.ClosingLine == nil || payload.ClosingOdds == nil {
		return 0, 0, false, nil
	}
	return *payload.ClosingLine, *payload.ClosingOdds, true, nil
}

// FinalResult fetches the final score and grades the bet side against its
// line. done is false while the game is in progress.
func (c *Client) FinalResult(ctx context.Context, gameID string, side models.Side, line float64) (models.BetResult, bool, error) {
	var payload resultPayload
	path := fmt.Sprintf("/v1/scores?apiKey=%s&gameId=%s", url.QueryEscape(c.apiKey), url.QueryEscape(gameID))
	if err := c.get(ctx, path, &payload); err != nil {
		return models.ResultPending, false, err
	}
	if !payload.Completed {
		return models.ResultPending, false, nil
	}

	return GradeSpread(side, line, payload.HomeScore, payload.AwayScore), true, nil
}

// GradeSpread settles a spread bet. line is the number taken by the bet's
// side (negative when laying points).
func GradeSpread(side models.Side, line float64, homeScore, awayScore int) models.BetResult {
	margin := float64(homeScore - awayScore)
	if side == models.SideAway {
		margin = -margin
	}

	adjusted := margin + line
	switch {
	case adjusted > 0:
		return models.ResultWin
	case adjusted < 0:
		return models.ResultLoss
	default:
		return models.ResultPush
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("results API returned %d", resp.StatusCode)
		}

		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	return err
}
