package service

import "errors"

// Failure kinds surfaced by the orchestration layer. Nothing here retries
// automatically; every failure is returned to the caller as-is, and a failed
// operation leaves all persisted state exactly as it was.
var (
	// ErrInvalidReference: the channel reference could not be resolved to an identity.
	ErrInvalidReference = errors.New("invalid channel reference")
	// ErrChannelNotFound: the platform has no channel for the resolved identity.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrNoVideosFound: the channel's upload catalog is empty.
	ErrNoVideosFound = errors.New("no videos found on channel")
	// ErrVideoFetch: detail fetch for the sampled videos yielded nothing.
	ErrVideoFetch = errors.New("failed to fetch video details")
	// ErrAnalysisFailed: the generative collaborator or the extractor failed
	// during analysis. Any previously stored analysis is untouched.
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrCoachingPhaseFailed: a coaching phase could not produce a result; the
	// session is left unmodified.
	ErrCoachingPhaseFailed = errors.New("coaching phase failed")
	// ErrSessionNotFound: no coaching session exists for the given id.
	ErrSessionNotFound = errors.New("coaching session not found")
	// ErrProfileNotFound: chat requires a profile created by chat setup.
	ErrProfileNotFound = errors.New("creator profile not found")
	// ErrSummaryMissing: the profile exists but carries no channel summary, so
	// chat has no context to ground on. Setup must be rerun.
	ErrSummaryMissing = errors.New("channel summary missing")
	// ErrChatFailed: the generative collaborator failed during a chat turn.
	ErrChatFailed = errors.New("coach chat failed")
)
