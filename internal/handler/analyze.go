package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/channelscope/channelscope-go/internal/middleware"
	"github.com/channelscope/channelscope-go/internal/model"
	"github.com/channelscope/channelscope-go/internal/service"
)

type AnalyzeHandler struct {
	svc *service.AnalysisService
}

func NewAnalyzeHandler(svc *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

type analyzeRequest struct {
	ChannelURL string `json:"channel_url"`
}

// analyzeResponse is the envelope for both fresh and reused analyses.
type analyzeResponse struct {
	Channel  model.ChannelInfo     `json:"channel"`
	Analysis model.AnalysisContent `json:"analysis"`
	Metadata model.AnalysisMeta    `json:"metadata"`
	Source   string                `json:"source"`
}

// Analyze handles POST /v1/analyze
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var req analyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	reference, errMsg := middleware.ValidateChannelReference(req.ChannelURL)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	res, err := h.svc.Analyze(c.Context(), reference)
	if err != nil {
		return analysisErrorResponse(c, err)
	}

	Metrics.AnalysesTotal.WithLabelValues(res.Source).Inc()

	return c.JSON(analyzeResponse{
		Channel:  res.Channel.Info(),
		Analysis: res.Analysis.Content(),
		Metadata: res.Analysis.Meta(time.Now()),
		Source:   res.Source,
	})
}

// strategicResponse is the envelope for deep-guidance analyses.
type strategicResponse struct {
	Channel      model.ChannelInfo        `json:"channel"`
	TopVideos    []model.VideoInfo        `json:"top_videos"`
	RecentVideos []model.VideoInfo        `json:"recent_videos"`
	Analysis     *model.StrategicAnalysis `json:"analysis"`
	ModelVersion string                   `json:"model_version"`
	GeneratedAt  string                   `json:"generated_at"`
}

// AnalyzeStrategic handles POST /v1/analyze/strategic
func (h *AnalyzeHandler) AnalyzeStrategic(c fiber.Ctx) error {
	var req analyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	reference, errMsg := middleware.ValidateChannelReference(req.ChannelURL)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	res, err := h.svc.AnalyzeStrategic(c.Context(), reference)
	if err != nil {
		return analysisErrorResponse(c, err)
	}

	Metrics.AnalysesTotal.WithLabelValues("strategic").Inc()

	return c.JSON(strategicResponse{
		Channel:      res.Channel.Info(),
		TopVideos:    videoInfos(res.TopVideos),
		RecentVideos: videoInfos(res.RecentVideos),
		Analysis:     res.Analysis,
		ModelVersion: res.ModelVersion,
		GeneratedAt:  res.GeneratedAt.UTC().Format(time.RFC3339),
	})
}

func videoInfos(videos []model.Video) []model.VideoInfo {
	out := make([]model.VideoInfo, len(videos))
	for i := range videos {
		out[i] = videos[i].Info()
	}
	return out
}

// analysisErrorResponse maps pipeline failures onto HTTP statuses.
func analysisErrorResponse(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidReference):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHANNEL", "Could not resolve channel from the given URL")
	case errors.Is(err, service.ErrChannelNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "CHANNEL_NOT_FOUND", "Channel not found")
	case errors.Is(err, service.ErrNoVideosFound):
		return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "NO_VIDEOS", "Channel has no videos to analyze")
	case errors.Is(err, service.ErrVideoFetch):
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "VIDEO_FETCH_FAILED", "Failed to fetch video details")
	case errors.Is(err, service.ErrAnalysisFailed):
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "ANALYSIS_FAILED", "Analysis could not be generated")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to analyze channel")
	}
}
