package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/channelscope/channelscope-go/internal/model"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// FindByChannelID returns the creator profile, or (nil, nil) when none exists.
func (r *ProfileRepo) FindByChannelID(ctx context.Context, channelID string) (*model.CreatorProfile, error) {
	query := `
		SELECT channel_id, preferred_genres, future_goals, time_horizon,
		       effort_level, content_frequency, equipment_level, editing_skills,
		       current_challenges, topics_to_avoid, channel_summary,
		       created_at, updated_at
		FROM creator_profiles
		WHERE channel_id = $1`

	var p model.CreatorProfile
	var genres, challenges, avoid []byte
	err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&p.ChannelID, &genres, &p.FutureGoals, &p.TimeHorizon,
		&p.EffortLevel, &p.ContentFrequency, &p.EquipmentLevel, &p.EditingSkills,
		&challenges, &avoid, &p.ChannelSummary, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(genres, &p.PreferredGenres); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(challenges, &p.CurrentChallenges); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(avoid, &p.TopicsToAvoid); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert writes the profile, at most one per channel.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.CreatorProfile) error {
	genres, err := json.Marshal(orEmpty(p.PreferredGenres))
	if err != nil {
		return err
	}
	challenges, err := json.Marshal(orEmpty(p.CurrentChallenges))
	if err != nil {
		return err
	}
	avoid, err := json.Marshal(orEmpty(p.TopicsToAvoid))
	if err != nil {
		return err
	}

	// An empty incoming summary keeps the stored one, so plain preference
	// updates never wipe the chat-setup context.
	query := `
		INSERT INTO creator_profiles (channel_id, preferred_genres, future_goals,
		                              time_horizon, effort_level, content_frequency,
		                              equipment_level, editing_skills,
		                              current_challenges, topics_to_avoid,
		                              channel_summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (channel_id) DO UPDATE SET
			preferred_genres = EXCLUDED.preferred_genres,
			future_goals = EXCLUDED.future_goals,
			time_horizon = EXCLUDED.time_horizon,
			effort_level = EXCLUDED.effort_level,
			content_frequency = EXCLUDED.content_frequency,
			equipment_level = EXCLUDED.equipment_level,
			editing_skills = EXCLUDED.editing_skills,
			current_challenges = EXCLUDED.current_challenges,
			topics_to_avoid = EXCLUDED.topics_to_avoid,
			channel_summary = COALESCE(NULLIF(EXCLUDED.channel_summary, ''), creator_profiles.channel_summary),
			updated_at = NOW()`

	_, err = r.pool.Exec(ctx, query,
		p.ChannelID, genres, p.FutureGoals,
		p.TimeHorizon, p.EffortLevel, p.ContentFrequency,
		p.EquipmentLevel, p.EditingSkills,
		challenges, avoid, p.ChannelSummary,
	)
	return err
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
