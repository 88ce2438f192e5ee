package repository

import (
	"context"
	"iter"
	"log/slog"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/infra"
	"food-rescue/internal/infra/db"
	"food-rescue/internal/infra/repository/converter"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/errs"
	"food-rescue/internal/pkg/pgconv"
	"food-rescue/internal/usecase/shared"

	"github.com/google/uuid"
)

const postColumns = `id, donor_id, recipient_id, food_name, servings, freshness, latitude, longitude,
	created_at, duration_minutes, expires_at, reserved_until, status, version, updated_at`

const (
	insertPostSQL = `INSERT INTO food_posts (` + postColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	selectPostSQL = `SELECT ` + postColumns + ` FROM food_posts WHERE id = $1`

	selectPostForUpdateSQL = selectPostSQL + ` FOR UPDATE`

	// Mutable columns only; version is bumped by the statement itself.
	swapPostSQL = `UPDATE food_posts
	SET recipient_id = $3, reserved_until = $4, status = $5, updated_at = $6, version = version + 1
	WHERE id = $1 AND version = $2
	RETURNING ` + postColumns

	listPostsByStatusSQL = `SELECT ` + postColumns + ` FROM food_posts WHERE status = $1`
)

// PostStore is the PostgreSQL adapter of shared.PostStore.
type PostStore struct {
	pool   db.TxBeginner
	clock  clock.Clock
	logger *slog.Logger
}

func NewPostStore(pool db.TxBeginner, clk clock.Clock, logger *slog.Logger) *PostStore {
	return &PostStore{
		pool:   pool,
		clock:  clk,
		logger: logger.With(slog.String("component", "repository.posts")),
	}
}

func (s *PostStore) Create(ctx context.Context, draft foodpost.Draft) (foodpost.FoodPost, error) {
	post, err := foodpost.New(draft, s.clock.Now())
	if err != nil {
		return foodpost.FoodPost{}, err
	}

	row := converter.FoodPostToInfra(post)
	_, err = s.pool.Exec(ctx, insertPostSQL,
		row.ID, row.DonorID, row.RecipientID, row.FoodName, row.Servings, row.Freshness,
		row.Latitude, row.Longitude, row.CreatedAt, row.DurationMinutes, row.ExpiresAt,
		row.ReservedUntil, row.Status, row.Version, row.UpdatedAt,
	)
	if err != nil {
		return foodpost.FoodPost{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to insert food post", err)
	}
	return post, nil
}

func (s *PostStore) Get(ctx context.Context, id uuid.UUID) (foodpost.FoodPost, error) {
	return s.get(ctx, s.pool, selectPostSQL, id)
}

func (s *PostStore) get(ctx context.Context, q db.DBTX, query string, id uuid.UUID) (foodpost.FoodPost, error) {
	var row converter.FoodPostRow
	if err := q.QueryRow(ctx, query, id).Scan(row.Fields()...); err != nil {
		if pgconv.IsNoRows(err) {
			return foodpost.FoodPost{}, errs.Wrapf(foodpost.ErrNotFound, "post %s", id)
		}
		return foodpost.FoodPost{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to load food post", err)
	}
	return converter.FoodPostFromInfra(row)
}

// CompareAndSwap locks the row, applies mutate to the stored post and writes the result
// guarded by the expected version. Serialization failures are retried by WithDefaultRetry;
// version mismatches are not.
func (s *PostStore) CompareAndSwap(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int64,
	mutate shared.Mutator,
) (foodpost.FoodPost, error) {
	return shared.WithDefaultRetry(ctx, s.pool, func(tx db.DBTX) (foodpost.FoodPost, error) {
		current, err := s.get(ctx, tx, selectPostForUpdateSQL, id)
		if err != nil {
			return foodpost.FoodPost{}, err
		}
		if current.Version() != expectedVersion {
			return foodpost.FoodPost{}, errs.Wrapf(foodpost.ErrVersionConflict,
				"post %s: expected version %d, stored %d", id, expectedVersion, current.Version())
		}

		next, err := mutate(current)
		if err != nil {
			return foodpost.FoodPost{}, err
		}
		if err := foodpost.ValidateSuccessor(current, next); err != nil {
			return foodpost.FoodPost{}, err
		}

		row := converter.FoodPostToInfra(next)
		var stored converter.FoodPostRow
		err = tx.QueryRow(ctx, swapPostSQL,
			id, expectedVersion, row.RecipientID, row.ReservedUntil, row.Status, row.UpdatedAt,
		).Scan(stored.Fields()...)
		if err != nil {
			if pgconv.IsNoRows(err) {
				return foodpost.FoodPost{}, errs.Wrapf(foodpost.ErrVersionConflict, "post %s changed concurrently", id)
			}
			return foodpost.FoodPost{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to update food post", err)
		}
		return converter.FoodPostFromInfra(stored)
	})
}

// ListByStatus streams rows from the server; the query runs when iteration starts and
// the rows are closed when it stops.
func (s *PostStore) ListByStatus(
	ctx context.Context,
	status foodpost.Status,
	filter shared.PostFilter,
) iter.Seq2[foodpost.FoodPost, error] {
	return func(yield func(foodpost.FoodPost, error) bool) {
		rows, err := s.pool.Query(ctx, listPostsByStatusSQL, status.String())
		if err != nil {
			yield(foodpost.FoodPost{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list food posts", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row converter.FoodPostRow
			if err := rows.Scan(row.Fields()...); err != nil {
				yield(foodpost.FoodPost{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan food post", err))
				return
			}
			post, err := converter.FoodPostFromInfra(row)
			if err != nil {
				if !yield(foodpost.FoodPost{}, err) {
					return
				}
				continue
			}
			if filter.Accept(post) && !yield(post, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(foodpost.FoodPost{}, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate food posts", err))
		}
	}
}
