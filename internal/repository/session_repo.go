package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/channelscope/channelscope-go/internal/model"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// FindBySessionID returns the session, or (nil, nil) when unknown.
func (r *SessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*model.CoachingSession, error) {
	query := `
		SELECT session_id, channel_id, current_phase, phases, history,
		       created_at, last_interaction
		FROM coaching_sessions
		WHERE session_id = $1`

	var s model.CoachingSession
	var phases, history []byte
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&s.SessionID, &s.ChannelID, &s.CurrentPhase, &phases, &history,
		&s.CreatedAt, &s.LastInteraction,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(phases, &s.Phases); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &s.History); err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert creates the session record. Called exactly once, together with the
// phase-1 result, so no session ever exists with zero completed phases.
func (r *SessionRepo) Insert(ctx context.Context, s *model.CoachingSession) error {
	phases, history, err := marshalSession(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO coaching_sessions (session_id, channel_id, current_phase,
		                               phases, history, created_at, last_interaction)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.pool.Exec(ctx, query,
		s.SessionID, s.ChannelID, s.CurrentPhase, phases, history,
		s.CreatedAt, s.LastInteraction,
	)
	return err
}

// Update rewrites the session's mutable state in one statement.
func (r *SessionRepo) Update(ctx context.Context, s *model.CoachingSession) error {
	phases, history, err := marshalSession(s)
	if err != nil {
		return err
	}

	query := `
		UPDATE coaching_sessions
		SET current_phase = $1, phases = $2, history = $3, last_interaction = $4
		WHERE session_id = $5`

	_, err = r.pool.Exec(ctx, query,
		s.CurrentPhase, phases, history, s.LastInteraction, s.SessionID,
	)
	return err
}

// ListByChannel returns all sessions for a channel, newest first.
func (r *SessionRepo) ListByChannel(ctx context.Context, channelID string) ([]model.CoachingSession, error) {
	query := `
		SELECT session_id, channel_id, current_phase, phases, history,
		       created_at, last_interaction
		FROM coaching_sessions
		WHERE channel_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.CoachingSession
	for rows.Next() {
		var s model.CoachingSession
		var phases, history []byte
		err := rows.Scan(&s.SessionID, &s.ChannelID, &s.CurrentPhase, &phases, &history,
			&s.CreatedAt, &s.LastInteraction)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(phases, &s.Phases); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(history, &s.History); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func marshalSession(s *model.CoachingSession) ([]byte, []byte, error) {
	phases, err := json.Marshal(s.Phases)
	if err != nil {
		return nil, nil, err
	}
	history := s.History
	if history == nil {
		history = []model.HistoryEntry{}
	}
	hist, err := json.Marshal(history)
	if err != nil {
		return nil, nil, err
	}
	return phases, hist, nil
}
