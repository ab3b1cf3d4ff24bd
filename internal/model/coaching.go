package model

import "time"

// NumPhases is the fixed length of a coaching program.
const NumPhases = 6

// PhaseResult is the structured payload extracted from one model response.
type PhaseResult map[string]any

// PhaseSlot holds one phase's state. Single-result phases fill Result;
// accumulating phases (phase 4) append to Results instead.
type PhaseSlot struct {
	Completed bool          `json:"completed"`
	Result    PhaseResult   `json:"result,omitempty"`
	Results   []PhaseResult `json:"results,omitempty"`
}

// HistoryEntry is one append-only conversation record.
type HistoryEntry struct {
	Phase     int         `json:"phase"`
	Timestamp time.Time   `json:"timestamp"`
	UserInput string      `json:"user_input,omitempty"`
	Result    PhaseResult `json:"result"`
}

// CoachingSession is a six-phase guided session for one channel. Created
// atomically with its phase-1 result; mutated in place on every transition;
// never deleted by the engine.
type CoachingSession struct {
	SessionID       string               `json:"session_id"`
	ChannelID       string               `json:"channel_id"`
	CurrentPhase    int                  `json:"current_phase"`
	Phases          [NumPhases]PhaseSlot `json:"phases"`
	History         []HistoryEntry       `json:"history"`
	CreatedAt       time.Time            `json:"created_at"`
	LastInteraction time.Time            `json:"last_interaction"`
}

// Slot returns the 1-based phase slot.
func (s *CoachingSession) Slot(phase int) *PhaseSlot {
	return &s.Phases[phase-1]
}

// CompletedPhases lists completed phase numbers in order.
func (s *CoachingSession) CompletedPhases() []int {
	var done []int
	for i := range s.Phases {
		if s.Phases[i].Completed {
			done = append(done, i+1)
		}
	}
	return done
}

// AllPhasesComplete reports whether every phase has run at least once.
func (s *CoachingSession) AllPhasesComplete() bool {
	for i := range s.Phases {
		if !s.Phases[i].Completed {
			return false
		}
	}
	return true
}
