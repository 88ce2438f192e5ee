package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	JobKindPush = "push"
	topicPrefix = "food_post."
)

type JobWriter interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type eventPayload struct {
	PostID      uuid.UUID  `json:"post_id"`
	Type        string     `json:"type"`
	DonorID     uuid.UUID  `json:"donor_id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	Version     int64      `json:"version"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// OutboxGateway records each event as a queued notification job. Delivery is left to
// whatever drains notification_jobs.
type OutboxGateway struct {
	jobs   JobWriter
	clock  clock.Clock
	logger *slog.Logger
}

func NewOutboxGateway(jobs JobWriter, clk clock.Clock, logger *slog.Logger) *OutboxGateway {
	return &OutboxGateway{
		jobs:   jobs,
		clock:  clk,
		logger: logger.With(slog.String("component", "notifier.outbox")),
	}
}

func (g *OutboxGateway) Notify(ctx context.Context, event foodpost.Event) {
	payload, err := json.Marshal(eventPayload{
		PostID:      event.PostID,
		Type:        event.Type.String(),
		DonorID:     event.DonorID,
		RecipientID: event.RecipientID,
		Version:     event.Version,
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		g.logger.Error("failed to encode notification payload",
			slog.String("post_id", event.PostID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	// The request context may already be cancelled by the time the transition commits.
	ctx = context.WithoutCancel(ctx)
	if err := g.jobs.CreateJob(ctx, JobKindPush, Topic(event.Type), payload, g.clock.Now()); err != nil {
		g.logger.Error("failed to queue notification",
			slog.String("post_id", event.PostID.String()),
			slog.String("type", event.Type.String()),
			slog.String("error", err.Error()),
		)
	}
}

func Topic(t foodpost.EventType) string {
	return topicPrefix + t.String()
}
