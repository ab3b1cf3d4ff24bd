package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxChannelIDLen = 32   // channels.channel_id VARCHAR(32)
	MaxReferenceLen = 512  // longest accepted channel URL or handle
	MaxUserInputLen = 2000 // coaching free-text message
)

var (
	// channelIDRe matches YouTube channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// uuidRe matches canonical lowercase UUIDs used for session ids.
	uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateChannelReference checks a channel URL, handle, or bare channel id.
// Resolution to a canonical id happens later; this only rejects input that
// could never resolve.
func ValidateChannelReference(ref string) (string, string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "channel_url is required"
	}
	if len(ref) > MaxReferenceLen {
		return "", "channel_url is too long"
	}
	if strings.ContainsAny(ref, " \t\n") {
		return "", "channel_url must not contain whitespace"
	}
	return ref, ""
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateSessionID checks that a session ID is a canonical UUID.
func ValidateSessionID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "sessionId is required"
	}
	if !uuidRe.MatchString(id) {
		return "", "sessionId must be a UUID"
	}
	return id, ""
}

// ValidateAction checks the coaching continuation action. Empty defaults to
// "continue"; anything else must be a known action.
func ValidateAction(action string) (string, string) {
	action = strings.TrimSpace(strings.ToLower(action))
	if action == "" {
		return "continue", ""
	}
	switch action {
	case "continue", "refine", "another_idea":
		return action, ""
	}
	return "", "action must be one of: continue, refine, another_idea"
}

// ValidateUserInput trims and bounds the coaching free-text message.
func ValidateUserInput(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > MaxUserInputLen {
		input = input[:MaxUserInputLen]
	}
	return input
}
