package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/channelscope/channelscope-go/internal/model"
)

// Fields the extractor requires in every analysis response.
var requiredAnalysisFields = []string{
	"summary", "themes", "target_audience", "content_style", "upload_frequency",
}

const analysisSystemInstruction = "You are an expert YouTube channel analyst. " +
	"You study a channel's metadata and a sample of its videos and produce a " +
	"concise, structured profile of what the channel is about. Always respond " +
	"with a single JSON object and nothing else."

const coachingSystemInstruction = "You are an experienced YouTube growth coach " +
	"guiding a creator through a structured coaching program. Ground every " +
	"recommendation in the channel data provided. Always respond with a single " +
	"JSON object and nothing else."

// buildAnalysisPrompt renders channel metadata and the sampled videos into the
// analysis task sent to the model.
func buildAnalysisPrompt(meta *model.ChannelMetadata, videos []model.Video) string {
	var b strings.Builder

	b.WriteString("Analyze this YouTube channel.\n\n")
	b.WriteString("Channel:\n")
	fmt.Fprintf(&b, "- Title: %s\n", meta.Title)
	if meta.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", truncate(meta.Description, 500))
	}
	fmt.Fprintf(&b, "- Subscribers: %d\n", meta.SubscriberCount)
	fmt.Fprintf(&b, "- Total videos: %d\n", meta.VideoCount)
	fmt.Fprintf(&b, "- Total views: %d\n", meta.ViewCount)
	if meta.Country != "" {
		fmt.Fprintf(&b, "- Country: %s\n", meta.Country)
	}

	fmt.Fprintf(&b, "\nVideo sample (%d videos):\n", len(videos))
	for i := range videos {
		v := &videos[i]
		fmt.Fprintf(&b, "%d. %q", i+1, v.Title)
		fmt.Fprintf(&b, " | views: %d, likes: %d, comments: %d", v.ViewCount, v.LikeCount, v.CommentCount)
		if v.PublishedAt != nil {
			fmt.Fprintf(&b, " | published: %s", v.PublishedAt.UTC().Format("2006-01-02"))
		}
		if v.Duration != "" {
			fmt.Fprintf(&b, " | duration: %s", v.Duration)
		}
		b.WriteByte('\n')
		if v.Description != "" {
			fmt.Fprintf(&b, "   %s\n", truncate(v.Description, 200))
		}
	}

	b.WriteString("\nRespond with a JSON object containing exactly these fields:\n")
	b.WriteString(`- "summary": 2-3 sentence overview of the channel` + "\n")
	b.WriteString(`- "themes": array of the main content themes` + "\n")
	b.WriteString(`- "target_audience": who the channel is made for` + "\n")
	b.WriteString(`- "content_style": production and presentation style` + "\n")
	b.WriteString(`- "upload_frequency": observed cadence of uploads` + "\n")
	b.WriteString(`- "confidence": your confidence in this analysis, 0.0 to 1.0` + "\n")

	return b.String()
}

const strategicSystemInstruction = "You are a senior YouTube growth strategist. " +
	"You study a channel's best-performing and latest videos and produce deep, " +
	"actionable guidance. Always respond with a single JSON object and nothing else."

// buildStrategicPrompt renders the channel plus its notable videos into the
// strategic-guidance task.
func buildStrategicPrompt(meta *model.ChannelMetadata, top, recent []model.Video) string {
	var b strings.Builder

	b.WriteString("Produce a strategic growth analysis for this YouTube channel.\n\n")
	b.WriteString("Channel:\n")
	fmt.Fprintf(&b, "- Title: %s\n", meta.Title)
	if meta.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", truncate(meta.Description, 500))
	}
	fmt.Fprintf(&b, "- Subscribers: %d\n", meta.SubscriberCount)
	fmt.Fprintf(&b, "- Total videos: %d\n", meta.VideoCount)
	fmt.Fprintf(&b, "- Total views: %d\n", meta.ViewCount)

	writeEngagementList(&b, "Top videos by views (what works best)", top)
	writeEngagementList(&b, "Latest videos (current direction)", recent)

	b.WriteString("\nRespond with a JSON object containing exactly these fields:\n")
	b.WriteString(`- "strengths": array of strings` + "\n")
	b.WriteString(`- "weaknesses": array of strings` + "\n")
	b.WriteString(`- "growth_strategy": array of objects with "priority", "action", "expected_impact", "timeline"` + "\n")
	b.WriteString(`- "content_recommendations": array of objects with "type", "description", "frequency", "example_topics" (array of strings)` + "\n")
	b.WriteString(`- "thumbnail_advice": string` + "\n")
	b.WriteString(`- "title_advice": string` + "\n")
	b.WriteString(`- "upload_schedule": string` + "\n")
	b.WriteString(`- "engagement_tips": array of strings` + "\n")
	b.WriteString(`- "scores": object with integer "overall", "consistency", "engagement", "growth_potential" (0-100)` + "\n")
	b.WriteString(`- "overall_verdict": string` + "\n")

	return b.String()
}

// writeEngagementList renders videos with full engagement numbers, for tasks
// where likes and comments matter, not just reach.
func writeEngagementList(b *strings.Builder, label string, videos []model.Video) {
	if len(videos) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", label)
	for i := range videos {
		v := &videos[i]
		fmt.Fprintf(b, "- %q | views: %d, likes: %d, comments: %d", v.Title, v.ViewCount, v.LikeCount, v.CommentCount)
		if v.PublishedAt != nil {
			fmt.Fprintf(b, " | published: %s", v.PublishedAt.UTC().Format("2006-01-02"))
		}
		b.WriteByte('\n')
	}
}

const summarySystemInstruction = "You are an expert YouTube channel analyst. " +
	"You write dense, factual channel summaries used as hidden context by a " +
	"coaching assistant. Respond with plain text only."

// buildSummaryPrompt asks for the free-text channel summary stored on the
// creator profile during chat setup.
func buildSummaryPrompt(meta *model.ChannelMetadata, videos []model.Video) string {
	var b strings.Builder

	b.WriteString("Summarize this YouTube channel in 3-5 sentences for a coaching assistant.\n")
	b.WriteString("Cover what the channel is about, how it performs, and anything notable about its recent output.\n\n")
	b.WriteString("Channel:\n")
	fmt.Fprintf(&b, "- Title: %s\n", meta.Title)
	if meta.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", truncate(meta.Description, 500))
	}
	fmt.Fprintf(&b, "- Subscribers: %d\n", meta.SubscriberCount)
	fmt.Fprintf(&b, "- Total videos: %d\n", meta.VideoCount)
	fmt.Fprintf(&b, "- Total views: %d\n", meta.ViewCount)

	writeEngagementList(&b, "Recent videos", videos)

	b.WriteString("\nRespond with the summary as plain text, no formatting.\n")
	return b.String()
}

const chatSystemInstruction = "You are an experienced YouTube growth coach in an " +
	"ongoing conversation with a creator. Ground your advice in the channel " +
	"summary and preferences provided. Be specific and practical. Respond with " +
	"plain text only."

// buildChatPrompt renders the stored summary, the creator's preferences, and
// their message into one conversational turn.
func buildChatPrompt(profile *model.CreatorProfile, message string) string {
	var b strings.Builder

	b.WriteString("Channel summary (not visible to the creator):\n")
	b.WriteString(profile.ChannelSummary)
	b.WriteString("\n")

	var prefs []string
	if len(profile.PreferredGenres) > 0 {
		prefs = append(prefs, "preferred genres: "+strings.Join(profile.PreferredGenres, ", "))
	}
	if profile.FutureGoals != "" {
		prefs = append(prefs, "goals: "+profile.FutureGoals)
	}
	if profile.EffortLevel != "" {
		prefs = append(prefs, "effort level: "+profile.EffortLevel)
	}
	if profile.EditingSkills != "" {
		prefs = append(prefs, "editing skills: "+profile.EditingSkills)
	}
	if len(profile.CurrentChallenges) > 0 {
		prefs = append(prefs, "current challenges: "+strings.Join(profile.CurrentChallenges, ", "))
	}
	if len(prefs) > 0 {
		b.WriteString("\nCreator preferences:\n")
		for _, p := range prefs {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	fmt.Fprintf(&b, "\nCreator's message: %s\n", truncate(message, 1000))
	b.WriteString("\nAnswer the creator directly, in plain text.\n")
	return b.String()
}

// coachingContext is everything a phase prompt draws on beyond the user's
// message: the channel, its notable videos, the creator's stated preferences,
// and the results of phases already run.
type coachingContext struct {
	Meta         *model.ChannelMetadata
	TopVideos    []model.Video
	RecentVideos []model.Video
	Profile      *model.CreatorProfile
	Session      *model.CoachingSession
}

// buildPhasePrompt renders the full coaching context plus the phase task.
func buildPhasePrompt(spec PhaseSpec, cc coachingContext, userInput string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Coaching phase %d of %d: %s\n\n", spec.Number, model.NumPhases, spec.Name)

	b.WriteString("Channel:\n")
	fmt.Fprintf(&b, "- Title: %s\n", cc.Meta.Title)
	fmt.Fprintf(&b, "- Subscribers: %d\n", cc.Meta.SubscriberCount)
	fmt.Fprintf(&b, "- Total videos: %d\n", cc.Meta.VideoCount)
	fmt.Fprintf(&b, "- Total views: %d\n", cc.Meta.ViewCount)
	if cc.Meta.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", truncate(cc.Meta.Description, 300))
	}

	writeVideoList(&b, "Top videos by views", cc.TopVideos)
	writeVideoList(&b, "Most recent videos", cc.RecentVideos)

	if cc.Profile != nil {
		b.WriteString("\nCreator preferences:\n")
		if len(cc.Profile.PreferredGenres) > 0 {
			fmt.Fprintf(&b, "- Preferred genres: %s\n", strings.Join(cc.Profile.PreferredGenres, ", "))
		}
		if cc.Profile.FutureGoals != "" {
			fmt.Fprintf(&b, "- Goals: %s\n", cc.Profile.FutureGoals)
		}
		if cc.Profile.TimeHorizon != "" {
			fmt.Fprintf(&b, "- Time horizon: %s\n", cc.Profile.TimeHorizon)
		}
		if cc.Profile.EffortLevel != "" {
			fmt.Fprintf(&b, "- Effort level: %s\n", cc.Profile.EffortLevel)
		}
		if cc.Profile.ContentFrequency != "" {
			fmt.Fprintf(&b, "- Target frequency: %s\n", cc.Profile.ContentFrequency)
		}
		if cc.Profile.EquipmentLevel != "" {
			fmt.Fprintf(&b, "- Equipment: %s\n", cc.Profile.EquipmentLevel)
		}
		if cc.Profile.EditingSkills != "" {
			fmt.Fprintf(&b, "- Editing skills: %s\n", cc.Profile.EditingSkills)
		}
		if len(cc.Profile.CurrentChallenges) > 0 {
			fmt.Fprintf(&b, "- Current challenges: %s\n", strings.Join(cc.Profile.CurrentChallenges, ", "))
		}
		if len(cc.Profile.TopicsToAvoid) > 0 {
			fmt.Fprintf(&b, "- Topics to avoid: %s\n", strings.Join(cc.Profile.TopicsToAvoid, ", "))
		}
	}

	if cc.Session != nil {
		writePriorPhases(&b, cc.Session, spec.Number)
	}

	if userInput != "" {
		fmt.Fprintf(&b, "\nCreator's message: %s\n", truncate(userInput, 1000))
	}

	b.WriteString("\nTask: ")
	b.WriteString(spec.Instructions)
	b.WriteByte('\n')

	return b.String()
}

func writeVideoList(b *strings.Builder, label string, videos []model.Video) {
	if len(videos) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", label)
	for i := range videos {
		v := &videos[i]
		fmt.Fprintf(b, "- %q (views: %d", v.Title, v.ViewCount)
		if v.PublishedAt != nil {
			fmt.Fprintf(b, ", published: %s", v.PublishedAt.UTC().Format("2006-01-02"))
		}
		b.WriteString(")\n")
	}
}

// writePriorPhases summarizes every completed phase before the one about to
// run, so later phases build on earlier conclusions.
func writePriorPhases(b *strings.Builder, s *model.CoachingSession, upTo int) {
	wrote := false
	for n := 1; n <= model.NumPhases; n++ {
		if n == upTo {
			continue
		}
		slot := s.Slot(n)
		if !slot.Completed {
			continue
		}
		if !wrote {
			b.WriteString("\nResults from earlier phases:\n")
			wrote = true
		}
		fmt.Fprintf(b, "Phase %d (%s):\n", n, PhaseName(n))
		if len(slot.Results) > 0 {
			for i, r := range slot.Results {
				fmt.Fprintf(b, "  Idea %d: %s\n", i+1, renderResult(r))
			}
		} else if slot.Result != nil {
			fmt.Fprintf(b, "  %s\n", renderResult(slot.Result))
		}
	}
}

func renderResult(r model.PhaseResult) string {
	var parts []string
	for _, key := range sortedKeys(r) {
		parts = append(parts, fmt.Sprintf("%s: %s", key, truncate(renderValue(r[key]), 400)))
	}
	return strings.Join(parts, "; ")
}

func renderValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		var items []string
		for _, e := range x {
			items = append(items, renderValue(e))
		}
		return strings.Join(items, ", ")
	default:
		return fmt.Sprintf("%v", x)
	}
}

func sortedKeys(m model.PhaseResult) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// timestamp formats times the way responses carry them.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
