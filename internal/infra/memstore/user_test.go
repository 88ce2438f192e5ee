//go:build unit

package memstore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"food-rescue/internal/infra"
	"food-rescue/internal/infra/memstore"
	"food-rescue/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewUserStore(slog.New(slog.NewTextHandler(io.Discard, nil)))

	donor := builder.NewUserBuilder().MustBuildDomain()
	require.NoError(t, store.Create(ctx, donor))

	t.Run("duplicate email", func(t *testing.T) {
		dup := builder.NewUserBuilder().MustBuildDomain()
		err := store.Create(ctx, dup)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("find by id and email", func(t *testing.T) {
		byID, err := store.FindByID(ctx, donor.ID())
		require.NoError(t, err)
		assert.Equal(t, donor.Email(), byID.Email())

		byEmail, err := store.FindByEmail(ctx, donor.Email().Value())
		require.NoError(t, err)
		assert.Equal(t, donor.ID(), byEmail.ID())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		_, err = store.FindByEmail(ctx, "nobody@example.com")
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("update last login", func(t *testing.T) {
		at := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
		require.NoError(t, store.UpdateLastLogin(ctx, donor.ID(), at))

		got, err := store.FindByID(ctx, donor.ID())
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin())
		assert.Equal(t, at, *got.LastLogin())

		err = store.UpdateLastLogin(ctx, uuid.New(), at)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
