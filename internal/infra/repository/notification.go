package repository

import (
	"context"
	"log/slog"
	"time"

	"food-rescue/internal/infra"
	"food-rescue/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertNotificationJobSQL = `INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
	VALUES ($1, $2, $3, $4, $5, $6)`

	NotificationStatusQueued = "queued"
)

type NotificationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewNotificationRepository(q db.DBTX, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     q,
		logger: logger.With(slog.String("component", "repository.notifications")),
	}
}

// CreateJob queues a job for an out-of-process sender.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, insertNotificationJobSQL,
		uuid.New(), kind, topic, payload, runAt, NotificationStatusQueued,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create notification job", err)
	}
	return nil
}
