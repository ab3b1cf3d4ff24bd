package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/channelscope/channelscope-go/internal/repository"
)

type StatsHandler struct {
	analyses *repository.AnalysisRepo
}

func NewStatsHandler(analyses *repository.AnalysisRepo) *StatsHandler {
	return &StatsHandler{analyses: analyses}
}

// GetStats handles GET /v1/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.analyses.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to fetch statistics",
			},
		})
	}

	return c.JSON(stats)
}
