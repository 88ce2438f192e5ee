//go:build unit

package foodpost_test

import (
	"strings"
	"testing"
	"time"

	"food-rescue/internal/domain/foodpost"
	"food-rescue/internal/pkg/errs"
	"food-rescue/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func requireErrIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errs.Is(err, target), "expected %v, got %v", target, err)
}

func TestNew(t *testing.T) {
	t.Run("derives expiry and starts available at version 0", func(t *testing.T) {
		p := builder.NewFoodPostBuilder().WithDuration(90).MustBuildDomain()

		assert.NotEqual(t, uuid.Nil, p.ID())
		assert.Equal(t, foodpost.StatusAvailable, p.Status())
		assert.Equal(t, int64(0), p.Version())
		assert.Equal(t, t0, p.CreatedAt())
		assert.Equal(t, t0.Add(90*time.Minute), p.ExpiresAt())
		assert.Nil(t, p.RecipientID())
		assert.Nil(t, p.ReservedUntil())
	})

	cases := []struct {
		name   string
		mutate func(*builder.FoodPostBuilder)
		errIs  error
	}{
		{name: "valid", mutate: func(*builder.FoodPostBuilder) {}},
		{name: "no location", mutate: func(b *builder.FoodPostBuilder) { b.WithoutLocation() }},
		{name: "missing donor", mutate: func(b *builder.FoodPostBuilder) { b.DonorID = uuid.Nil }, errIs: foodpost.ErrValidation},
		{name: "blank food name", mutate: func(b *builder.FoodPostBuilder) { b.FoodName = "  " }, errIs: foodpost.ErrValidation},
		{name: "food name too long", mutate: func(b *builder.FoodPostBuilder) { b.FoodName = strings.Repeat("x", 201) }, errIs: foodpost.ErrValidation},
		{name: "zero servings", mutate: func(b *builder.FoodPostBuilder) { b.Servings = 0 }, errIs: foodpost.ErrValidation},
		{name: "negative servings", mutate: func(b *builder.FoodPostBuilder) { b.Servings = -3 }, errIs: foodpost.ErrValidation},
		{name: "zero duration", mutate: func(b *builder.FoodPostBuilder) { b.WithDuration(0) }, errIs: foodpost.ErrValidation},
		{name: "duration of exactly one week", mutate: func(b *builder.FoodPostBuilder) { b.WithDuration(foodpost.MaxDurationMinutes) }},
		{name: "duration beyond one week", mutate: func(b *builder.FoodPostBuilder) { b.WithDuration(foodpost.MaxDurationMinutes + 1) }, errIs: foodpost.ErrValidation},
		{name: "duration overflowing time.Duration", mutate: func(b *builder.FoodPostBuilder) { b.WithDuration(200_000_000) }, errIs: foodpost.ErrValidation},
		{name: "servings at limit", mutate: func(b *builder.FoodPostBuilder) { b.Servings = foodpost.MaxServings }},
		{name: "servings beyond limit", mutate: func(b *builder.FoodPostBuilder) { b.Servings = foodpost.MaxServings + 1 }, errIs: foodpost.ErrValidation},
		{name: "servings wider than int32", mutate: func(b *builder.FoodPostBuilder) { b.Servings = 3_000_000_000 }, errIs: foodpost.ErrValidation},
		{name: "latitude out of range", mutate: func(b *builder.FoodPostBuilder) { b.WithLocation(91, 0) }, errIs: foodpost.ErrValidation},
		{name: "longitude out of range", mutate: func(b *builder.FoodPostBuilder) { b.WithLocation(0, -181) }, errIs: foodpost.ErrValidation},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := builder.NewFoodPostBuilder().With(c.mutate).BuildDomain()
			if c.errIs == nil {
				require.NoError(t, err)
				return
			}
			requireErrIs(t, err, c.errIs)
		})
	}
}

func TestReserve(t *testing.T) {
	recipient := uuid.New()

	t.Run("holds the post for the ttl", func(t *testing.T) {
		p := builder.NewFoodPostBuilder().MustBuildDomain()
		now := t0.Add(10 * time.Minute)

		next, err := p.Reserve(recipient, now, 5*time.Minute)
		require.NoError(t, err)

		assert.Equal(t, foodpost.StatusReserved, next.Status())
		assert.True(t, next.IsHeldBy(recipient))
		require.NotNil(t, next.ReservedUntil())
		assert.Equal(t, now.Add(5*time.Minute), *next.ReservedUntil())
		assert.Equal(t, now, next.UpdatedAt())

		// receiver untouched
		assert.Equal(t, foodpost.StatusAvailable, p.Status())
		assert.Nil(t, p.RecipientID())
	})

	t.Run("reservation never outlives the post", func(t *testing.T) {
		p := builder.NewFoodPostBuilder().WithDuration(10).MustBuildDomain()
		now := t0.Add(8 * time.Minute)

		next, err := p.Reserve(recipient, now, 5*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, p.ExpiresAt(), *next.ReservedUntil())
	})

	t.Run("rejections", func(t *testing.T) {
		base := builder.NewFoodPostBuilder().MustBuildDomain()
		reserved, err := base.Reserve(uuid.New(), t0, time.Minute)
		require.NoError(t, err)

		cases := []struct {
			name      string
			post      foodpost.FoodPost
			recipient uuid.UUID
			now       time.Time
			errIs     error
		}{
			{name: "already reserved", post: reserved, recipient: recipient, now: t0, errIs: foodpost.ErrConflict},
			{name: "past expiry", post: base, recipient: recipient, now: base.ExpiresAt(), errIs: foodpost.ErrExpired},
			{name: "donor reserving own post", post: base, recipient: base.DonorID(), now: t0, errIs: foodpost.ErrForbidden},
			{name: "nil recipient", post: base, recipient: uuid.Nil, now: t0, errIs: foodpost.ErrValidation},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := c.post.Reserve(c.recipient, c.now, 5*time.Minute)
				requireErrIs(t, err, c.errIs)
			})
		}
	})
}

func TestAccept(t *testing.T) {
	recipient := uuid.New()
	p := builder.NewFoodPostBuilder().MustBuildDomain()
	reserved, err := p.Reserve(recipient, t0, 5*time.Minute)
	require.NoError(t, err)

	t.Run("holder accepts inside the window", func(t *testing.T) {
		next, err := reserved.Accept(recipient, t0.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, foodpost.StatusAccepted, next.Status())
		assert.True(t, next.IsHeldBy(recipient))
		assert.Nil(t, next.ReservedUntil())
	})

	t.Run("other recipient", func(t *testing.T) {
		_, err := reserved.Accept(uuid.New(), t0.Add(time.Minute))
		requireErrIs(t, err, foodpost.ErrNotReserved)
	})

	t.Run("window lapsed", func(t *testing.T) {
		_, err := reserved.Accept(recipient, t0.Add(5*time.Minute))
		requireErrIs(t, err, foodpost.ErrNotReserved)
	})

	t.Run("not reserved", func(t *testing.T) {
		_, err := p.Accept(recipient, t0)
		requireErrIs(t, err, foodpost.ErrNotReserved)
	})
}

func TestRelease(t *testing.T) {
	recipient := uuid.New()
	reserved, err := builder.NewFoodPostBuilder().MustBuildDomain().Reserve(recipient, t0, 5*time.Minute)
	require.NoError(t, err)

	next, err := reserved.Release(recipient, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, foodpost.StatusAvailable, next.Status())
	assert.Nil(t, next.RecipientID())
	assert.Nil(t, next.ReservedUntil())

	_, err = reserved.Release(uuid.New(), t0)
	requireErrIs(t, err, foodpost.ErrNotReserved)
}

func TestExpire(t *testing.T) {
	p := builder.NewFoodPostBuilder().WithDuration(30).MustBuildDomain()

	t.Run("not yet due", func(t *testing.T) {
		assert.False(t, p.IsDueForExpiry(t0.Add(29*time.Minute)))
		_, err := p.Expire(t0.Add(29 * time.Minute))
		requireErrIs(t, err, foodpost.ErrInvalidTransition)
	})

	t.Run("due exactly at expires_at", func(t *testing.T) {
		now := t0.Add(30 * time.Minute)
		require.True(t, p.IsDueForExpiry(now))
		next, err := p.Expire(now)
		require.NoError(t, err)
		assert.Equal(t, foodpost.StatusExpired, next.Status())
	})

	t.Run("lapsed reservation is due before the post expires", func(t *testing.T) {
		reserved, err := p.Reserve(uuid.New(), t0, 5*time.Minute)
		require.NoError(t, err)

		now := t0.Add(5 * time.Minute)
		require.True(t, reserved.IsDueForExpiry(now))
		next, err := reserved.Expire(now)
		require.NoError(t, err)
		assert.Equal(t, foodpost.StatusExpired, next.Status())
		assert.Nil(t, next.RecipientID())
	})

	t.Run("accepted posts never expire", func(t *testing.T) {
		r := uuid.New()
		reserved, _ := p.Reserve(r, t0, 5*time.Minute)
		accepted, err := reserved.Accept(r, t0.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, accepted.IsDueForExpiry(t0.Add(24*time.Hour)))
	})
}

func TestCancel(t *testing.T) {
	p := builder.NewFoodPostBuilder().MustBuildDomain()

	next, err := p.Cancel(p.DonorID(), t0)
	require.NoError(t, err)
	assert.Equal(t, foodpost.StatusCancelled, next.Status())

	_, err = p.Cancel(uuid.New(), t0)
	requireErrIs(t, err, foodpost.ErrForbidden)

	_, err = next.Cancel(p.DonorID(), t0)
	requireErrIs(t, err, foodpost.ErrConflict)
}

func TestValidateSuccessor(t *testing.T) {
	p := builder.NewFoodPostBuilder().MustBuildDomain()
	recipient := uuid.New()
	reserved, _ := p.Reserve(recipient, t0, time.Minute)
	accepted, _ := reserved.Accept(recipient, t0)

	require.NoError(t, foodpost.ValidateSuccessor(p, reserved))
	require.NoError(t, foodpost.ValidateSuccessor(p, p))

	t.Run("terminal status cannot move", func(t *testing.T) {
		back := foodpost.FromSnapshot(func() foodpost.Snapshot {
			s := accepted.Snapshot()
			s.Status = foodpost.StatusAvailable
			s.RecipientID = nil
			return s
		}())
		requireErrIs(t, foodpost.ValidateSuccessor(accepted, back), foodpost.ErrInvalidTransition)
	})

	t.Run("immutable field changed", func(t *testing.T) {
		s := p.Snapshot()
		s.Servings = 99
		requireErrIs(t, foodpost.ValidateSuccessor(p, foodpost.FromSnapshot(s)), foodpost.ErrInvalidTransition)
	})

	t.Run("reserved without recipient", func(t *testing.T) {
		s := reserved.Snapshot()
		s.RecipientID = nil
		requireErrIs(t, foodpost.ValidateSuccessor(p, foodpost.FromSnapshot(s)), foodpost.ErrInvalidTransition)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	p, _ := builder.NewFoodPostBuilder().MustBuildDomain().Reserve(uuid.New(), t0, time.Minute)
	got := foodpost.FromSnapshot(p.Snapshot()).Snapshot()
	if diff := cmp.Diff(p.Snapshot(), got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStatus(t *testing.T) {
	terminal := map[foodpost.Status]bool{
		foodpost.StatusAccepted:  true,
		foodpost.StatusExpired:   true,
		foodpost.StatusCancelled: true,
	}
	for _, s := range foodpost.AllStatuses() {
		assert.True(t, s.IsValid())
		assert.Equal(t, terminal[s], s.IsTerminal(), s)
		for _, to := range foodpost.AllStatuses() {
			if terminal[s] {
				assert.False(t, s.CanTransitionTo(to), "%s -> %s", s, to)
			}
		}
	}

	assert.True(t, foodpost.StatusReserved.CanTransitionTo(foodpost.StatusAvailable))
	assert.False(t, foodpost.StatusAvailable.CanTransitionTo(foodpost.StatusAccepted))

	_, err := foodpost.ParseStatus("gone")
	requireErrIs(t, err, foodpost.ErrInvalidStatus)
}

func TestDistanceKm(t *testing.T) {
	shibuya := foodpost.Location{Latitude: 35.6595, Longitude: 139.7005}
	shinjuku := foodpost.Location{Latitude: 35.6896, Longitude: 139.7006}

	assert.InDelta(t, 0, shibuya.DistanceKm(shibuya), 1e-9)
	assert.InDelta(t, 3.35, shibuya.DistanceKm(shinjuku), 0.05)
	assert.InDelta(t, shibuya.DistanceKm(shinjuku), shinjuku.DistanceKm(shibuya), 1e-9)
}
