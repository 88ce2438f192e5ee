package api

import (
	"context"
	"net/http"

	resdto "food-rescue/internal/handler/dto/response"
	"food-rescue/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SweepRunner interface {
	SweepNow(ctx context.Context) commands.SweepResult
}

type AdminHandler struct {
	sweeper SweepRunner
}

func NewAdminHandler(sweeper SweepRunner) *AdminHandler {
	return &AdminHandler{sweeper: sweeper}
}

// @Summary Run expiration sweep
// @Description Runs one sweep immediately. Registered in debug mode only.
// @Tags admin
// @Produce json
// @Success 200 {object} resdto.SweepResponse
// @Router /api/admin/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	result := h.sweeper.SweepNow(c.Request.Context())
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
