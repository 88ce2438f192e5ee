package commands

import (
	"context"
	"log/slog"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DefaultReservationTTL = 5 * time.Minute

	// A version conflict is retried against the freshest post once, then surfaced.
	maxCASAttempts = 2
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_post_transitions_total",
		Help: "Committed food post transitions by event type.",
	}, []string{"event"})
	versionConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodrescue_post_version_conflicts_total",
		Help: "Compare-and-swap attempts that lost to a concurrent writer.",
	}, []string{"operation"})
	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "foodrescue_expire_sweep_duration_seconds",
		Help:    "Duration of expiration sweeps.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)

// Reservation is the hold a recipient obtains from TryReserve.
type Reservation struct {
	PostID        uuid.UUID
	RecipientID   uuid.UUID
	ReservedUntil time.Time
	Post          foodpost.FoodPost
}

type SweepResult struct {
	Scanned int
	Expired int
	Skipped int
	Failed  int
}

type LifecycleEngine interface {
	CreatePost(ctx context.Context, draft foodpost.Draft) (foodpost.FoodPost, error)
	TryReserve(ctx context.Context, postID, recipientID uuid.UUID) (*Reservation, error)
	ConfirmAccept(ctx context.Context, postID, recipientID uuid.UUID) (foodpost.FoodPost, error)
	CancelReservation(ctx context.Context, postID, recipientID uuid.UUID) (foodpost.FoodPost, error)
	Cancel(ctx context.Context, postID, donorID uuid.UUID) (foodpost.FoodPost, error)
	// ExpireSweep never fails; per-post errors are logged and counted in the result.
	ExpireSweep(ctx context.Context, now time.Time) SweepResult
}

type Option func(*lifecycleEngine)

func WithReservationTTL(ttl time.Duration) Option {
	return func(e *lifecycleEngine) {
		if ttl > 0 {
			e.reservationTTL = ttl
		}
	}
}

type lifecycleEngine struct {
	store          shared.PostStore
	notifier       shared.NotificationGateway
	clock          clock.Clock
	logger         *slog.Logger
	reservationTTL time.Duration
}

func NewLifecycleEngine(
	store shared.PostStore,
	notifier shared.NotificationGateway,
	clk clock.Clock,
	logger *slog.Logger,
	opts ...Option,
) LifecycleEngine {
	e := &lifecycleEngine{
		store:          store,
		notifier:       notifier,
		clock:          clk,
		logger:         logger.With(slog.String("component", "lifecycle")),
		reservationTTL: DefaultReservationTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *lifecycleEngine) CreatePost(ctx context.Context, draft foodpost.Draft) (foodpost.FoodPost, error) {
	post, err := e.store.Create(ctx, draft)
	if err != nil {
		return foodpost.FoodPost{}, err
	}
	e.logger.Debug("food post created",
		slog.String("post_id", post.ID().String()),
		slog.String("donor_id", post.DonorID().String()),
		slog.Time("expires_at", post.ExpiresAt()),
	)
	return post, nil
}

func (e *lifecycleEngine) TryReserve(ctx context.Context, postID, recipientID uuid.UUID) (*Reservation, error) {
	_, next, _, err := e.transition(ctx, "reserve", postID, nil,
		func(p foodpost.FoodPost, now time.Time) (foodpost.FoodPost, error) {
			return p.Reserve(recipientID, now, e.reservationTTL)
		})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, foodpost.NewEvent(foodpost.EventReserved, next, next.RecipientID()))
	return &Reservation{
		PostID:        next.ID(),
		RecipientID:   recipientID,
		ReservedUntil: *next.ReservedUntil(),
		Post:          next,
	}, nil
}

func (e *lifecycleEngine) ConfirmAccept(ctx context.Context, postID, recipientID uuid.UUID) (foodpost.FoodPost, error) {
	_, next, _, err := e.transition(ctx, "accept", postID, nil,
		func(p foodpost.FoodPost, now time.Time) (foodpost.FoodPost, error) {
			return p.Accept(recipientID, now)
		})
	if err != nil {
		return foodpost.FoodPost{}, err
	}

	e.emit(ctx, foodpost.NewEvent(foodpost.EventAccepted, next, next.RecipientID()))
	return next, nil
}

func (e *lifecycleEngine) CancelReservation(ctx context.Context, postID, recipientID uuid.UUID) (foodpost.FoodPost, error) {
	alreadyAvailable := func(p foodpost.FoodPost) bool {
		return p.Status() == foodpost.StatusAvailable
	}
	_, next, changed, err := e.transition(ctx, "release", postID, alreadyAvailable,
		func(p foodpost.FoodPost, now time.Time) (foodpost.FoodPost, error) {
			return p.Release(recipientID, now)
		})
	if err != nil {
		return foodpost.FoodPost{}, err
	}

	if changed {
		e.emit(ctx, foodpost.NewEvent(foodpost.EventReleased, next, &recipientID))
	}
	return next, nil
}

func (e *lifecycleEngine) Cancel(ctx context.Context, postID, donorID uuid.UUID) (foodpost.FoodPost, error) {
	alreadyCancelled := func(p foodpost.FoodPost) bool {
		return p.Status() == foodpost.StatusCancelled && p.DonorID() == donorID
	}
	prev, next, changed, err := e.transition(ctx, "cancel", postID, alreadyCancelled,
		func(p foodpost.FoodPost, now time.Time) (foodpost.FoodPost, error) {
			return p.Cancel(donorID, now)
		})
	if err != nil {
		return foodpost.FoodPost{}, err
	}

	if changed {
		e.emit(ctx, foodpost.NewEvent(foodpost.EventCancelled, next, prev.RecipientID()))
	}
	return next, nil
}

func (e *lifecycleEngine) ExpireSweep(ctx context.Context, now time.Time) SweepResult {
	timer := prometheus.NewTimer(sweepDuration)
	defer timer.ObserveDuration()

	var result SweepResult
	due := e.collectDue(ctx, now, &result)

	for _, post := range due {
		next, err := e.store.CompareAndSwap(ctx, post.ID(), post.Version(),
			func(p foodpost.FoodPost) (foodpost.FoodPost, error) {
				return p.Expire(now)
			})
		switch {
		case err == nil:
			result.Expired++
			e.emit(ctx, foodpost.NewEvent(foodpost.EventExpired, next, post.RecipientID()))
		case errs.IsAny(err, foodpost.ErrVersionConflict, foodpost.ErrInvalidTransition, foodpost.ErrNotFound):
			// Another writer moved the post first.
			result.Skipped++
			e.logger.Debug("expire skipped",
				slog.String("post_id", post.ID().String()),
				slog.String("reason", err.Error()),
			)
		default:
			result.Failed++
			e.logger.Error("failed to expire food post",
				slog.String("post_id", post.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if result.Expired > 0 || result.Failed > 0 {
		e.logger.Info("expire sweep finished",
			slog.Int("scanned", result.Scanned),
			slog.Int("expired", result.Expired),
			slog.Int("skipped", result.Skipped),
			slog.Int("failed", result.Failed),
		)
	}
	return result
}

// collectDue reads every open post that is due at now before any write, so listing does
// not hold store resources while the sweep swaps.
func (e *lifecycleEngine) collectDue(ctx context.Context, now time.Time, result *SweepResult) []foodpost.FoodPost {
	isDue := func(p foodpost.FoodPost) bool { return p.IsDueForExpiry(now) }

	var due []foodpost.FoodPost
	for _, status := range []foodpost.Status{foodpost.StatusAvailable, foodpost.StatusReserved} {
		for post, err := range e.store.ListByStatus(ctx, status, isDue) {
			if err != nil {
				result.Failed++
				e.logger.Error("failed to list food posts for expiry",
					slog.String("status", status.String()),
					slog.String("error", err.Error()),
				)
				break
			}
			result.Scanned++
			due = append(due, post)
		}
	}
	return due
}

type transitionFunc func(p foodpost.FoodPost, now time.Time) (foodpost.FoodPost, error)

// transition reads the post, then swaps it against the version it read. It returns the
// post before and after the swap and whether anything was written. satisfied, when set,
// short-circuits requests the stored post already fulfils.
func (e *lifecycleEngine) transition(
	ctx context.Context,
	op string,
	postID uuid.UUID,
	satisfied func(foodpost.FoodPost) bool,
	fn transitionFunc,
) (foodpost.FoodPost, foodpost.FoodPost, bool, error) {
	for attempt := 1; ; attempt++ {
		current, err := e.store.Get(ctx, postID)
		if err != nil {
			return foodpost.FoodPost{}, foodpost.FoodPost{}, false, err
		}
		if satisfied != nil && satisfied(current) {
			return current, current, false, nil
		}

		now := e.clock.Now()
		next, err := e.store.CompareAndSwap(ctx, postID, current.Version(),
			func(p foodpost.FoodPost) (foodpost.FoodPost, error) {
				return fn(p, now)
			})
		if err == nil {
			return current, next, true, nil
		}
		if !errs.Is(err, foodpost.ErrVersionConflict) {
			return foodpost.FoodPost{}, foodpost.FoodPost{}, false, err
		}

		versionConflictsTotal.WithLabelValues(op).Inc()
		if attempt >= maxCASAttempts {
			return foodpost.FoodPost{}, foodpost.FoodPost{}, false,
				errs.Mark(errs.Wrapf(err, "%s lost to a concurrent update", op), foodpost.ErrConflict)
		}
	}
}

func (e *lifecycleEngine) emit(ctx context.Context, event foodpost.Event) {
	transitionsTotal.WithLabelValues(event.Type.String()).Inc()
	e.notifier.Notify(ctx, event)
}
