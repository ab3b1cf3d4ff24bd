package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/channelscope/channelscope-go/internal/middleware"
	"github.com/channelscope/channelscope-go/internal/model"
	"github.com/channelscope/channelscope-go/internal/service"
)

type ProfileHandler struct {
	profiles service.ProfileStore
}

func NewProfileHandler(profiles service.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Upsert handles POST /v1/profile
func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	var p model.CreatorProfile
	if err := c.Bind().Body(&p); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	channelID, errMsg := middleware.ValidateChannelID(p.ChannelID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	p.ChannelID = channelID

	if err := h.profiles.Upsert(c.Context(), &p); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save profile")
	}
	return c.JSON(fiber.Map{"status": "saved", "channel_id": channelID})
}

// Get handles GET /v1/profile/:channelId
func (h *ProfileHandler) Get(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(c.Params("channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	profile, err := h.profiles.FindByChannelID(c.Context(), channelID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
	}
	if profile == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No profile exists for this channel")
	}
	return c.JSON(profile)
}
