package service

import "github.com/channelscope/channelscope-go/internal/model"

// User actions accepted when continuing a coaching session.
const (
	ActionContinue    = "continue"
	ActionRefine      = "refine"
	ActionAnotherIdea = "another_idea"
)

// PhaseSpec describes one coaching phase: what the model is asked to produce
// and which fields the extractor requires in the response.
type PhaseSpec struct {
	Number       int
	Name         string
	Accumulating bool
	Required     []string
	Instructions string
}

var phaseSpecs = [model.NumPhases]PhaseSpec{
	{
		Number:   1,
		Name:     "Current Reality Check",
		Required: []string{"assessment", "strengths", "weaknesses"},
		Instructions: "Assess where the channel stands today. Give an honest assessment " +
			"of its current position, the strengths worth building on, and the " +
			"weaknesses holding it back. Respond with a JSON object containing " +
			`"assessment" (string), "strengths" (array of strings) and "weaknesses" (array of strings).`,
	},
	{
		Number:   2,
		Name:     "Trend Analysis",
		Required: []string{"trends", "channel_fit"},
		Instructions: "Identify the trends in this channel's niche that matter right now " +
			"and explain how well the channel is positioned against each of them. " +
			"Respond with a JSON object containing " +
			`"trends" (array of strings) and "channel_fit" (string).`,
	},
	{
		Number:   3,
		Name:     "Opportunity Mapping",
		Required: []string{"opportunities", "positioning"},
		Instructions: "Map the concrete opportunities open to this channel given its " +
			"strengths and the trends just discussed, and recommend a positioning. " +
			"Respond with a JSON object containing " +
			`"opportunities" (array of strings) and "positioning" (string).`,
	},
	{
		Number:       4,
		Name:         "Content Ideas",
		Accumulating: true,
		Required:     []string{"idea_title", "concept", "why_it_works"},
		Instructions: "Propose one specific, high-potential video idea for this channel. " +
			"Make it concrete enough to act on. Respond with a JSON object containing " +
			`"idea_title" (string), "concept" (string) and "why_it_works" (string).`,
	},
	{
		Number:   5,
		Name:     "Execution Strategy",
		Required: []string{"action_plan", "upload_schedule"},
		Instructions: "Turn the selected ideas into an execution strategy: a step-by-step " +
			"action plan and a realistic upload schedule. Respond with a JSON object " +
			`containing "action_plan" (array of strings) and "upload_schedule" (string).`,
	},
	{
		Number:   6,
		Name:     "Long-Term Roadmap",
		Required: []string{"roadmap", "milestones"},
		Instructions: "Lay out a long-term roadmap for the channel over the creator's " +
			"time horizon, with checkpoints to measure progress. Respond with a JSON " +
			`object containing "roadmap" (string) and "milestones" (array of strings).`,
	},
}

// Phase returns the spec for a 1-based phase number.
func Phase(n int) PhaseSpec {
	return phaseSpecs[n-1]
}

// PhaseName returns the display name for a 1-based phase number, or "" when
// the number is out of range.
func PhaseName(n int) string {
	if n < 1 || n > model.NumPhases {
		return ""
	}
	return phaseSpecs[n-1].Name
}

// NextPhase maps a user action on the current phase to the phase that runs
// next. "continue" advances, "refine" reruns the current phase, and
// "another_idea" reruns the idea phase when that is where the session stands.
// Anything unrecognized behaves like "continue". The result never leaves the
// 1..NumPhases range.
func NextPhase(current int, action string) int {
	switch action {
	case ActionRefine:
		return current
	case ActionAnotherIdea:
		if current == 4 {
			return current
		}
	}
	if current >= model.NumPhases {
		return model.NumPhases
	}
	return current + 1
}
