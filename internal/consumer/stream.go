// Package consumer reads slate games from Redis Streams.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkrebs/gridline/pkg/models"
)

// StreamConsumer consumes slate games from a consumer group.
type StreamConsumer struct {
	client     *redis.Client
	consumerID string
	groupName  string
}

// Message is one stream entry carrying a slate game.
type Message struct {
	ID        string
	StreamKey string
	Game      models.SlateGame
}

// NewStreamConsumer creates a stream consumer.
func NewStreamConsumer(client *redis.Client, consumerID, groupName string) *StreamConsumer {
	return &StreamConsumer{
		client:     client,
		consumerID: consumerID,
		groupName:  groupName,
	}
}

// ConsumeStream starts consuming from streamKey and returns message and
// error channels. Both close when ctx is cancelled.
func (c *StreamConsumer) ConsumeStream(ctx context.Context, streamKey string) (<-chan Message, <-chan error) {
	messageCh := make(chan Message, 100)
	errorCh := make(chan error, 10)

	err := c.client.XGroupCreateMkStream(ctx, streamKey, c.groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		errorCh <- fmt.Errorf("create consumer group: %w", err)
		close(messageCh)
		close(errorCh)
		return messageCh, errorCh
	}

	go func() {
		defer close(messageCh)
		defer close(errorCh)

		for {
			select {
			case <-ctx.Done():
				return
			default:
				streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
					Group:    c.groupName,
					Consumer: c.consumerID,
					Streams:  []string{streamKey, ">"},
					Count:    10,
					Block:    1 * time.Second,
				}).Result()

				if err != nil {
					if err == redis.Nil {
						continue
					}
					if ctx.Err() != nil {
						return
					}
					errorCh <- fmt.Errorf("read stream: %w", err)
					time.Sleep(1 * time.Second)
					continue
				}

				for _, stream := range streams {
					for _, xmsg := range stream.Messages {
						msg, err := parseMessage(streamKey, xmsg)
						if err != nil {
							errorCh <- fmt.Errorf("parse message %s: %w", xmsg.ID, err)
							continue
						}
						messageCh <- msg
					}
				}
			}
		}
	}()

	return messageCh, errorCh
}

// AckMessage acknowledges a processed message.
func (c *StreamConsumer) AckMessage(ctx context.Context, streamKey, messageID string) error {
	return c.client.XAck(ctx, streamKey, c.groupName, messageID).Err()
}

func parseMessage(streamKey string, xmsg redis.XMessage) (Message, error) {
	payload, ok := xmsg.Values["game"].(string)
	if !ok {
		return Message{}, fmt.Errorf("missing 'game' field")
	}

	var game models.SlateGame
	if err := json.Unmarshal([]byte(payload), &game); err != nil {
		return Message{}, fmt.Errorf("decode slate game: %w", err)
	}

	return Message{ID: xmsg.ID, StreamKey: streamKey, Game: game}, nil
}
