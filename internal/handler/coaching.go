package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/channelscope/channelscope-go/internal/middleware"
	"github.com/channelscope/channelscope-go/internal/model"
	"github.com/channelscope/channelscope-go/internal/service"
)

type CoachingHandler struct {
	svc *service.CoachingService
}

func NewCoachingHandler(svc *service.CoachingService) *CoachingHandler {
	return &CoachingHandler{svc: svc}
}

type startRequest struct {
	ChannelURL string `json:"channel_url"`
}

type continueRequest struct {
	SessionID string `json:"session_id"`
	Action    string `json:"action"`
	Message   string `json:"message"`
}

// Start handles POST /v1/coaching/start
func (h *CoachingHandler) Start(c fiber.Ctx) error {
	var req startRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	reference, errMsg := middleware.ValidateChannelReference(req.ChannelURL)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	res, err := h.svc.Start(c.Context(), reference)
	if err != nil {
		return coachingErrorResponse(c, err)
	}

	Metrics.CoachingPhasesTotal.WithLabelValues("1").Inc()
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Continue handles POST /v1/coaching/continue
func (h *CoachingHandler) Continue(c fiber.Ctx) error {
	var req continueRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	sessionID, errMsg := middleware.ValidateSessionID(req.SessionID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	action, errMsg := middleware.ValidateAction(req.Action)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	message := middleware.ValidateUserInput(req.Message)

	res, err := h.svc.Continue(c.Context(), sessionID, action, message)
	if err != nil {
		return coachingErrorResponse(c, err)
	}

	Metrics.CoachingPhasesTotal.WithLabelValues(strconv.Itoa(res.Phase)).Inc()
	return c.JSON(res)
}

type chatSetupRequest struct {
	ChannelURL        string   `json:"channel_url"`
	PreferredGenres   []string `json:"preferred_genres"`
	FutureGoals       string   `json:"future_goals"`
	EffortLevel       string   `json:"effort_level"`
	EditingSkills     string   `json:"editing_skills"`
	CurrentChallenges []string `json:"current_challenges"`
}

type chatRequest struct {
	ChannelID string `json:"channel_id"`
	Message   string `json:"message"`
}

// ChatSetup handles POST /v1/coach/setup
func (h *CoachingHandler) ChatSetup(c fiber.Ctx) error {
	var req chatSetupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	reference, errMsg := middleware.ValidateChannelReference(req.ChannelURL)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	res, err := h.svc.SetupChat(c.Context(), reference, service.ChatPreferences{
		PreferredGenres:   req.PreferredGenres,
		FutureGoals:       req.FutureGoals,
		EffortLevel:       req.EffortLevel,
		EditingSkills:     req.EditingSkills,
		CurrentChallenges: req.CurrentChallenges,
	})
	if err != nil {
		return coachingErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"channel_id":   res.ChannelID,
		"channel_name": res.ChannelName,
	})
}

// Chat handles POST /v1/coach/chat
func (h *CoachingHandler) Chat(c fiber.Ctx) error {
	var req chatRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	channelID, errMsg := middleware.ValidateChannelID(req.ChannelID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	message := middleware.ValidateUserInput(req.Message)
	if message == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "message is required")
	}

	reply, err := h.svc.Chat(c.Context(), channelID, message)
	if err != nil {
		return coachingErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"channel_id": channelID,
		"response":   reply,
	})
}

// GetSession handles GET /v1/coaching/sessions/:sessionId
func (h *CoachingHandler) GetSession(c fiber.Ctx) error {
	sessionID, errMsg := middleware.ValidateSessionID(c.Params("sessionId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	session, err := h.svc.Session(c.Context(), sessionID)
	if err != nil {
		return coachingErrorResponse(c, err)
	}
	return c.JSON(session)
}

// ListSessions handles GET /v1/coaching/channels/:channelId/sessions
func (h *CoachingHandler) ListSessions(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	sessions, err := h.svc.SessionsForChannel(c.Context(), channelID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sessions")
	}
	if sessions == nil {
		sessions = []model.CoachingSession{}
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func coachingErrorResponse(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", "Coaching session not found")
	case errors.Is(err, service.ErrInvalidReference):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CHANNEL", "Could not resolve channel from the given URL")
	case errors.Is(err, service.ErrChannelNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "CHANNEL_NOT_FOUND", "Channel not found")
	case errors.Is(err, service.ErrCoachingPhaseFailed):
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "PHASE_FAILED", "Coaching phase could not be completed")
	case errors.Is(err, service.ErrProfileNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "PROFILE_NOT_FOUND", "No coach profile exists; run setup first")
	case errors.Is(err, service.ErrSummaryMissing):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "SUMMARY_MISSING", "Channel summary unavailable; rerun setup")
	case errors.Is(err, service.ErrChatFailed):
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "CHAT_FAILED", "Coach reply could not be generated")
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Coaching request failed")
	}
}
