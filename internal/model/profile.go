package model

import "time"

// CreatorProfile holds a creator's free-form preferences, at most one per
// channel, with upsert semantics.
type CreatorProfile struct {
	ChannelID         string     `json:"channel_id"`
	PreferredGenres   []string   `json:"preferred_genres"`
	FutureGoals       string     `json:"future_goals,omitempty"`
	TimeHorizon       string     `json:"time_horizon,omitempty"`
	EffortLevel       string     `json:"effort_level,omitempty"`
	ContentFrequency  string     `json:"content_frequency,omitempty"`
	EquipmentLevel    string     `json:"equipment_level,omitempty"`
	EditingSkills     string     `json:"editing_skills,omitempty"`
	CurrentChallenges []string   `json:"current_challenges"`
	TopicsToAvoid     []string   `json:"topics_to_avoid"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`

	// ChannelSummary is generated during chat setup and used as hidden chat
	// context. Never serialized to clients.
	ChannelSummary string `json:"-"`
}
