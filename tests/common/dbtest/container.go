//go:build integration

package dbtest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"food-rescue/internal/infra/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	containerOnce sync.Once
	containerDSN  string
	containerErr  error
)

// StartPostgres returns a migrated pool backed by a postgres container shared by the test process.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		var ctr *postgres.PostgresContainer
		ctr, containerErr = postgres.Run(ctx, "postgres:17",
			postgres.WithDatabase("food_rescue"),
			postgres.WithUsername("test"),
			postgres.WithPassword("testpass"),
			postgres.BasicWaitStrategies(),
			testcontainers.WithLabels(map[string]string{"purpose": "integration-tests"}),
		)
		if containerErr != nil {
			return
		}

		containerDSN, containerErr = ctr.ConnectionString(ctx, "sslmode=disable")
		if containerErr != nil {
			return
		}

		migrateURL := "pgx5://" + strings.TrimPrefix(containerDSN, "postgres://")
		containerErr = db.MigrateURL(migrateURL, slog.New(slog.DiscardHandler))
	})
	require.NoError(t, containerErr, "failed to start postgres container")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, containerDSN)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))
	t.Cleanup(pool.Close)

	return pool
}
