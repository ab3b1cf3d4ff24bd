package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/channelscope/channelscope-go/internal/config"
	"github.com/channelscope/channelscope-go/internal/extract"
	"github.com/channelscope/channelscope-go/internal/model"
)

// How many of each notable-video group goes into a phase prompt.
const (
	topVideoCount    = 5
	recentVideoCount = 5
)

// CoachingService drives six-phase coaching sessions. Sessions mutate only
// after a phase fully succeeds; a failed phase leaves the session exactly as
// the last successful transition left it.
type CoachingService struct {
	cfg      *config.Config
	analysis *AnalysisService
	sessions SessionStore
	profiles ProfileStore
	platform Platform
	gen      Generator

	now   func() time.Time
	newID func() string
}

func NewCoachingService(cfg *config.Config, analysis *AnalysisService, sessions SessionStore, profiles ProfileStore, platform Platform, gen Generator) *CoachingService {
	return &CoachingService{
		cfg:      cfg,
		analysis: analysis,
		sessions: sessions,
		profiles: profiles,
		platform: platform,
		gen:      gen,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CoachingResponse is the session snapshot returned after a phase runs.
type CoachingResponse struct {
	SessionID   string            `json:"session_id"`
	ChannelID   string            `json:"channel_id"`
	Phase       int               `json:"phase"`
	PhaseName   string            `json:"phase_name"`
	Result      model.PhaseResult `json:"result"`
	Completed   []int             `json:"completed_phases"`
	ProgramDone bool              `json:"program_complete"`
	Interaction string            `json:"last_interaction"`
}

// Start resolves the channel reference, gathers coaching context, runs phase 1
// and creates the session atomically with its phase-1 result.
func (s *CoachingService) Start(ctx context.Context, reference string) (*CoachingResponse, error) {
	channelID, err := s.analysis.ResolveChannelID(ctx, reference)
	if err != nil {
		return nil, err
	}

	cc, err := s.gatherContext(ctx, channelID, nil)
	if err != nil {
		return nil, err
	}

	result, err := s.runPhase(ctx, Phase(1), cc, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &model.CoachingSession{
		SessionID:       s.newID(),
		ChannelID:       channelID,
		CurrentPhase:    1,
		CreatedAt:       now,
		LastInteraction: now,
	}
	session.Slot(1).Completed = true
	session.Slot(1).Result = result
	session.History = append(session.History, model.HistoryEntry{
		Phase:     1,
		Timestamp: now,
		Result:    result,
	})

	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("storing coaching session: %w", err)
	}

	log.Info().
		Str("session_id", session.SessionID).
		Str("channel_id", channelID).
		Msg("coaching session started")

	return s.response(session, 1, result), nil
}

// Continue advances an existing session according to the user's action, runs
// the resulting phase, and persists the whole transition in one update.
func (s *CoachingService) Continue(ctx context.Context, sessionID, action, userInput string) (*CoachingResponse, error) {
	session, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	// A finished program is terminal: continuing past the end returns the
	// final snapshot without running a phase or touching the session.
	if session.CurrentPhase == model.NumPhases &&
		session.Slot(model.NumPhases).Completed &&
		action == ActionContinue {
		return s.response(session, model.NumPhases, session.Slot(model.NumPhases).Result), nil
	}

	phase := NextPhase(session.CurrentPhase, action)
	spec := Phase(phase)

	cc, err := s.gatherContext(ctx, session.ChannelID, session)
	if err != nil {
		return nil, err
	}

	result, err := s.runPhase(ctx, spec, cc, userInput)
	if err != nil {
		return nil, err
	}

	now := s.now()
	slot := session.Slot(phase)
	slot.Completed = true
	if spec.Accumulating {
		slot.Results = append(slot.Results, result)
	} else {
		slot.Result = result
	}
	session.CurrentPhase = phase
	session.LastInteraction = now
	session.History = append(session.History, model.HistoryEntry{
		Phase:     phase,
		Timestamp: now,
		UserInput: userInput,
		Result:    result,
	})

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("updating coaching session: %w", err)
	}

	return s.response(session, phase, result), nil
}

// Session returns an existing session, or ErrSessionNotFound.
func (s *CoachingService) Session(ctx context.Context, sessionID string) (*model.CoachingSession, error) {
	session, err := s.sessions.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SessionsForChannel lists a channel's sessions, newest first.
func (s *CoachingService) SessionsForChannel(ctx context.Context, channelID string) ([]model.CoachingSession, error) {
	return s.sessions.ListByChannel(ctx, channelID)
}

// runPhase generates and extracts one phase result. Nothing is mutated here;
// callers apply the result only on success.
func (s *CoachingService) runPhase(ctx context.Context, spec PhaseSpec, cc coachingContext, userInput string) (model.PhaseResult, error) {
	raw, err := s.gen.Generate(ctx, buildPhasePrompt(spec, cc, userInput), coachingSystemInstruction,
		s.cfg.GeminiTemperature, s.cfg.GeminiMaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoachingPhaseFailed, err)
	}

	obj, err := extract.Object(raw, spec.Required)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoachingPhaseFailed, err)
	}
	return model.PhaseResult(obj), nil
}

// gatherContext assembles the channel snapshot, notable videos, and creator
// profile a phase prompt draws on. The profile is optional; missing channel
// metadata is not.
func (s *CoachingService) gatherContext(ctx context.Context, channelID string, session *model.CoachingSession) (coachingContext, error) {
	meta, err := s.analysis.channelMetadata(ctx, channelID)
	if err != nil {
		return coachingContext{}, err
	}
	if meta == nil {
		return coachingContext{}, ErrChannelNotFound
	}

	top, recent := s.notableVideos(ctx, meta)

	profile, err := s.profiles.FindByChannelID(ctx, channelID)
	if err != nil {
		log.Warn().Err(err).Str("channel_id", channelID).Msg("profile lookup failed, coaching without preferences")
		profile = nil
	}

	return coachingContext{
		Meta:         meta,
		TopVideos:    top,
		RecentVideos: recent,
		Profile:      profile,
		Session:      session,
	}, nil
}

// notableVideos fetches up to the sample cap of detailed videos and picks the
// top performers by views plus the most recent uploads. Platform trouble here
// degrades to an empty context rather than failing the phase.
func (s *CoachingService) notableVideos(ctx context.Context, meta *model.ChannelMetadata) (top, recent []model.Video) {
	catalog, err := s.platform.Catalog(ctx, meta.UploadPlaylistID, int64(s.cfg.MaxVideosToAnalyze))
	if err != nil || len(catalog) == 0 {
		return nil, nil
	}

	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.VideoID
	}
	videos, err := s.platform.VideoDetails(ctx, ids)
	if err != nil || len(videos) == 0 {
		return nil, nil
	}

	return rankNotableVideos(videos, topVideoCount, recentVideoCount)
}

func (s *CoachingService) response(session *model.CoachingSession, phase int, result model.PhaseResult) *CoachingResponse {
	return &CoachingResponse{
		SessionID:   session.SessionID,
		ChannelID:   session.ChannelID,
		Phase:       phase,
		PhaseName:   PhaseName(phase),
		Result:      result,
		Completed:   session.CompletedPhases(),
		ProgramDone: session.AllPhasesComplete(),
		Interaction: timestamp(session.LastInteraction),
	}
}
