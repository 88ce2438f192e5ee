package notifier

import (
	"context"
	"log/slog"

	"food-rescue/internal/domain/foodpost"
)

// LogGateway writes events to the log. It backs the memory store driver, where there is
// no outbox table.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger.With(slog.String("component", "notifier.log"))}
}

func (g *LogGateway) Notify(ctx context.Context, event foodpost.Event) {
	attrs := []slog.Attr{
		slog.String("post_id", event.PostID.String()),
		slog.String("type", event.Type.String()),
		slog.String("donor_id", event.DonorID.String()),
		slog.Int64("version", event.Version),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.RecipientID != nil {
		attrs = append(attrs, slog.String("recipient_id", event.RecipientID.String()))
	}
	g.logger.LogAttrs(ctx, slog.LevelInfo, "food post event", attrs...)
}
