// Package publisher publishes accepted recommendations to Redis Streams.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mkrebs/gridline/pkg/models"
)

// StreamPublisher writes recommendations to the placed-recommendation
// streams.
type StreamPublisher struct {
	client *redis.Client
}

// NewStreamPublisher creates a stream publisher.
func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client}
}

// Publish writes a recommendation to both the sport-specific stream and the
// global recommendations.placed stream.
func (p *StreamPublisher) Publish(ctx context.Context, sport models.Sport, rec models.BetRecommendation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	for _, stream := range []string{
		fmt.Sprintf("recommendations.placed.%s", sport),
		"recommendations.placed",
	} {
		if err := p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			Values: map[string]interface{}{"recommendation": string(payload)},
		}).Err(); err != nil {
			return fmt.Errorf("publish to %s: %w", stream, err)
		}
	}

	return nil
}
