package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/channelscope/channelscope-go/internal/middleware"
	"github.com/channelscope/channelscope-go/internal/service"
)

type ChannelHandler struct {
	svc *service.AnalysisService
}

func NewChannelHandler(svc *service.AnalysisService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// GetAnalysis handles GET /v1/channels/:channelId/analysis. It only reads:
// a channel that has never been analyzed is a 404, never a trigger.
func (h *ChannelHandler) GetAnalysis(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	res, err := h.svc.FindExisting(c.Context(), channelID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to look up analysis")
	}
	if res == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No analysis exists for this channel")
	}

	return c.JSON(analyzeResponse{
		Channel:  res.Channel.Info(),
		Analysis: res.Analysis.Content(),
		Metadata: res.Analysis.Meta(time.Now()),
		Source:   res.Source,
	})
}
