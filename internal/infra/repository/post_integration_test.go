//go:build integration

package repository_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/infra/repository"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/errs"
	"food-rescue/tests/common/builder"
	"food-rescue/tests/common/dbtest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type PostStoreIntegrationSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	clock *clock.MockClock
	store *repository.PostStore
	ctx   context.Context
}

func TestPostStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostStoreIntegrationSuite))
}

func (s *PostStoreIntegrationSuite) SetupSuite() {
	s.pool = dbtest.StartPostgres(s.T())
}

func (s *PostStoreIntegrationSuite) SetupTest() {
	s.Require().NoError(dbtest.ResetDB(s.pool))
	s.clock = clock.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.store = repository.NewPostStore(s.pool, s.clock, slog.New(slog.DiscardHandler))
	s.ctx = context.Background()
}

func (s *PostStoreIntegrationSuite) create(b *builder.FoodPostBuilder) foodpost.FoodPost {
	p, err := s.store.Create(s.ctx, b.BuildDraft())
	s.Require().NoError(err)
	return p
}

func (s *PostStoreIntegrationSuite) reserveBy(recipient uuid.UUID) func(foodpost.FoodPost) (foodpost.FoodPost, error) {
	return func(cur foodpost.FoodPost) (foodpost.FoodPost, error) {
		return cur.Reserve(recipient, s.clock.Now(), 5*time.Minute)
	}
}

func (s *PostStoreIntegrationSuite) TestCreateAndGet() {
	p := s.create(builder.NewFoodPostBuilder())

	got, err := s.store.Get(s.ctx, p.ID())
	s.Require().NoError(err)

	timeEqual := cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })
	if diff := cmp.Diff(p.Snapshot(), got.Snapshot(), timeEqual); diff != "" {
		s.T().Errorf("stored post mismatch (-want +got):\n%s", diff)
	}
}

func (s *PostStoreIntegrationSuite) TestCreateWithoutLocation() {
	p := s.create(builder.NewFoodPostBuilder().WithoutLocation())

	got, err := s.store.Get(s.ctx, p.ID())
	s.Require().NoError(err)
	s.Nil(got.Location())
}

func (s *PostStoreIntegrationSuite) TestGetUnknown() {
	_, err := s.store.Get(s.ctx, uuid.New())
	s.True(errs.Is(err, foodpost.ErrNotFound))
}

func (s *PostStoreIntegrationSuite) TestCompareAndSwap() {
	p := s.create(builder.NewFoodPostBuilder())
	recipient := uuid.New()

	next, err := s.store.CompareAndSwap(s.ctx, p.ID(), 0, s.reserveBy(recipient))
	s.Require().NoError(err)
	s.Equal(int64(1), next.Version())
	s.Equal(foodpost.StatusReserved, next.Status())
	s.True(next.IsHeldBy(recipient))

	s.Run("stale version is rejected without writing", func() {
		_, err := s.store.CompareAndSwap(s.ctx, p.ID(), 0, s.reserveBy(uuid.New()))
		s.True(errs.Is(err, foodpost.ErrVersionConflict))

		got, err := s.store.Get(s.ctx, p.ID())
		s.Require().NoError(err)
		s.Equal(int64(1), got.Version())
		s.True(got.IsHeldBy(recipient))
	})

	s.Run("mutator error aborts the swap", func() {
		_, err := s.store.CompareAndSwap(s.ctx, p.ID(), 1, s.reserveBy(uuid.New()))
		s.True(errs.Is(err, foodpost.ErrConflict))

		got, err := s.store.Get(s.ctx, p.ID())
		s.Require().NoError(err)
		s.Equal(int64(1), got.Version())
	})

	s.Run("unknown post", func() {
		_, err := s.store.CompareAndSwap(s.ctx, uuid.New(), 0, s.reserveBy(recipient))
		s.True(errs.Is(err, foodpost.ErrNotFound))
	})
}

func (s *PostStoreIntegrationSuite) TestCompareAndSwapSingleWinner() {
	p := s.create(builder.NewFoodPostBuilder())

	const contenders = 16
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.store.CompareAndSwap(s.ctx, p.ID(), 0, s.reserveBy(uuid.New()))
			switch {
			case err == nil:
				wins.Add(1)
			case errs.Is(err, foodpost.ErrVersionConflict):
				conflicts.Add(1)
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(contenders-1), conflicts.Load())

	got, err := s.store.Get(s.ctx, p.ID())
	s.Require().NoError(err)
	s.Equal(int64(1), got.Version())
	s.Equal(foodpost.StatusReserved, got.Status())
}

func (s *PostStoreIntegrationSuite) TestListByStatus() {
	donor := uuid.New()
	a := s.create(builder.NewFoodPostBuilder().WithDonor(donor))
	b := s.create(builder.NewFoodPostBuilder())
	reserved := s.create(builder.NewFoodPostBuilder().WithDonor(donor))
	_, err := s.store.CompareAndSwap(s.ctx, reserved.ID(), 0, s.reserveBy(uuid.New()))
	s.Require().NoError(err)

	collect := func(status foodpost.Status, filter func(foodpost.FoodPost) bool) map[uuid.UUID]bool {
		ids := map[uuid.UUID]bool{}
		for p, err := range s.store.ListByStatus(s.ctx, status, filter) {
			s.Require().NoError(err)
			ids[p.ID()] = true
		}
		return ids
	}

	s.Equal(map[uuid.UUID]bool{a.ID(): true, b.ID(): true}, collect(foodpost.StatusAvailable, nil))
	s.Equal(map[uuid.UUID]bool{reserved.ID(): true}, collect(foodpost.StatusReserved, nil))
	s.Equal(map[uuid.UUID]bool{a.ID(): true}, collect(foodpost.StatusAvailable, func(p foodpost.FoodPost) bool {
		return p.DonorID() == donor
	}))
	s.Empty(collect(foodpost.StatusExpired, nil))

	s.Run("stops when the consumer breaks", func() {
		n := 0
		for range s.store.ListByStatus(s.ctx, foodpost.StatusAvailable, nil) {
			n++
			break
		}
		s.Equal(1, n)
	})
}
