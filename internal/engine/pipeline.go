package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mkrebs/gridline/internal/broadcaster"
	"github.com/mkrebs/gridline/internal/clv"
	"github.com/mkrebs/gridline/internal/consumer"
	"github.com/mkrebs/gridline/internal/publisher"
	"github.com/mkrebs/gridline/internal/risk"
	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
)

// Pipeline wires the full flow for one sport: consume posted lines, score
// the game, size any playable edge against the ledger, then track, persist
// and publish the accepted recommendation.
type Pipeline struct {
	consumer  *consumer.StreamConsumer
	publisher *publisher.StreamPublisher
	engine    *Engine
	sizer     *risk.Sizer
	tracker   *clv.Tracker
	store     contracts.RecommendationStore
	hub       *broadcaster.Hub
	bankroll  float64
	log       *logrus.Entry
}

// NewPipeline creates a pipeline. store and hub are optional; a nil value
// disables persistence or broadcasting.
func NewPipeline(
	cons *consumer.StreamConsumer,
	pub *publisher.StreamPublisher,
	eng *Engine,
	sizer *risk.Sizer,
	tracker *clv.Tracker,
	store contracts.RecommendationStore,
	hub *broadcaster.Hub,
	bankroll float64,
	log *logrus.Entry,
) *Pipeline {
	return &Pipeline{
		consumer:  cons,
		publisher: pub,
		engine:    eng,
		sizer:     sizer,
		tracker:   tracker,
		store:     store,
		hub:       hub,
		bankroll:  bankroll,
		log:       log,
	}
}

// Start consumes posted lines for a sport until ctx is cancelled. Every
// message is acknowledged once handled, including games that score NO_PLAY
// or fail validation; only the consumer shutting down ends the loop.
func (p *Pipeline) Start(ctx context.Context, sport models.Sport) error {
	streamKey := fmt.Sprintf("lines.market.%s", sport)
	p.log.WithField("stream", streamKey).Info("pipeline started")

	messageCh, errorCh := p.consumer.ConsumeStream(ctx, streamKey)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-errorCh:
			if err != nil {
				p.log.WithError(err).Warn("stream error")
			}

		case msg, ok := <-messageCh:
			if !ok {
				return nil
			}

			if err := p.processMessage(ctx, msg); err != nil {
				p.log.WithField("message_id", msg.ID).WithError(err).Warn("message failed")
			}
			if err := p.consumer.AckMessage(ctx, msg.StreamKey, msg.ID); err != nil {
				p.log.WithField("message_id", msg.ID).WithError(err).Warn("ack failed")
			}
		}
	}
}

func (p *Pipeline) processMessage(ctx context.Context, msg consumer.Message) error {
	game := msg.Game

	analysis, err := p.engine.EvaluateGame(game)
	if err != nil {
		// Missing ratings or an implausible line skips the game, it does
		// not fail the stream.
		var missing *models.MissingDataError
		var invalid *models.ValidationError
		if errors.As(err, &missing) || errors.As(err, &invalid) {
			p.log.WithField("game_id", game.Context.GameID).WithError(err).Info("game skipped")
			return nil
		}
		return err
	}

	if analysis.Classification == models.ClassNoPlay {
		p.log.WithField("game_id", analysis.GameID).Debug("no playable edge")
		return nil
	}

	odds := game.MarketOddsHome
	if analysis.Side == models.SideAway {
		odds = game.MarketOddsAway
	}

	rec, err := p.sizer.SizeBet(analysis, p.bankroll, odds)
	if err != nil {
		var capErr *models.CapExceededError
		if errors.As(err, &capErr) {
			p.log.WithField("game_id", analysis.GameID).WithError(err).Info("bet refused by ledger")
			return nil
		}
		return err
	}

	return p.accept(ctx, game.Context.Sport, rec)
}

// accept registers the recommendation everywhere downstream. CLV tracking
// and persistence must succeed; the websocket feed is advisory.
func (p *Pipeline) accept(ctx context.Context, sport models.Sport, rec models.BetRecommendation) error {
	record, err := p.tracker.Record(rec)
	if err != nil {
		return fmt.Errorf("track recommendation: %w", err)
	}

	if p.store != nil {
		if err := p.store.WriteRecommendation(ctx, rec); err != nil {
			return fmt.Errorf("persist recommendation: %w", err)
		}
		if err := p.store.WriteCLVRecord(ctx, record); err != nil {
			return fmt.Errorf("persist clv record: %w", err)
		}
	}

	if err := p.publisher.Publish(ctx, sport, rec); err != nil {
		return fmt.Errorf("publish recommendation: %w", err)
	}

	if p.hub != nil {
		p.hub.Broadcast(rec)
	}

	p.log.WithFields(logrus.Fields{
		"game_id": rec.GameID,
		"side":    rec.Side,
		"line":    rec.Line,
		"stars":   rec.StarRating,
		"stake":   rec.StakeAmount,
	}).Info("recommendation placed")
	return nil
}
