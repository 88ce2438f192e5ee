//go:build e2e

package authtest

import (
	"testing"
	"time"

	"food-rescue/internal/domain/user"
	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/pkg/config"
	"food-rescue/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
	clk clock.Clock
}

func NewJWTHelper(cfg config.JWTConfig, clk clock.Clock) *JWTHelper {
	return &JWTHelper{cfg: cfg, clk: clk}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Duration, h.clk).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken issues a token that expired an hour before the helper's clock.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	issuedAt := clock.NewMockClock(h.clk.Now().Add(-time.Hour - time.Minute))
	token, err := jwt.NewService(h.cfg.Secret, time.Hour, issuedAt).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
