package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/channelscope/channelscope-go/internal/model"
)

func TestSetupChat_StoresSummaryOnProfile(t *testing.T) {
	g := &fakeGenerator{output: "  A woodworking channel with a loyal weekly audience.  "}
	svc, _, profiles := newTestCoachingService(coachingPlatform(), g)

	res, err := svc.SetupChat(context.Background(), "https://youtube.com/@testchannel", ChatPreferences{
		PreferredGenres:   []string{"tutorials"},
		FutureGoals:       "monetize",
		EffortLevel:       "medium",
		EditingSkills:     "beginner",
		CurrentChallenges: []string{"low views"},
	})
	if err != nil {
		t.Fatalf("SetupChat: %v", err)
	}
	if res.ChannelID != testChannelID {
		t.Errorf("ChannelID = %q", res.ChannelID)
	}
	if res.ChannelName != "Test Channel" {
		t.Errorf("ChannelName = %q", res.ChannelName)
	}

	stored := profiles.rows[testChannelID]
	if stored == nil {
		t.Fatal("profile not stored")
	}
	if stored.ChannelSummary != "A woodworking channel with a loyal weekly audience." {
		t.Errorf("ChannelSummary = %q, want trimmed summary", stored.ChannelSummary)
	}
	if stored.FutureGoals != "monetize" || stored.EffortLevel != "medium" {
		t.Errorf("preferences not stored: %+v", stored)
	}

	prompt := g.prompts[0]
	if !strings.Contains(prompt, "Test Channel") {
		t.Error("summary prompt missing channel title")
	}
	if !strings.Contains(prompt, "Recent videos") {
		t.Error("summary prompt missing recent uploads")
	}
}

func TestSetupChat_KeepsUnstatedProfileFields(t *testing.T) {
	g := &fakeGenerator{output: "A solid channel."}
	svc, _, profiles := newTestCoachingService(coachingPlatform(), g)

	profiles.rows[testChannelID] = &model.CreatorProfile{
		ChannelID:     testChannelID,
		TimeHorizon:   "90 days",
		TopicsToAvoid: []string{"drama"},
	}

	if _, err := svc.SetupChat(context.Background(), testChannelID, ChatPreferences{FutureGoals: "grow"}); err != nil {
		t.Fatalf("SetupChat: %v", err)
	}

	stored := profiles.rows[testChannelID]
	if stored.TimeHorizon != "90 days" {
		t.Errorf("TimeHorizon = %q, want preserved value", stored.TimeHorizon)
	}
	if len(stored.TopicsToAvoid) != 1 {
		t.Errorf("TopicsToAvoid = %v, want preserved value", stored.TopicsToAvoid)
	}
	if stored.FutureGoals != "grow" {
		t.Errorf("FutureGoals = %q", stored.FutureGoals)
	}
}

func TestSetupChat_GenerationFailureStoresNothing(t *testing.T) {
	g := &fakeGenerator{err: errors.New("model offline")}
	svc, _, profiles := newTestCoachingService(coachingPlatform(), g)

	_, err := svc.SetupChat(context.Background(), testChannelID, ChatPreferences{})
	if !errors.Is(err, ErrChatFailed) {
		t.Fatalf("err = %v, want ErrChatFailed", err)
	}
	if profiles.rows[testChannelID] != nil {
		t.Error("profile stored despite generation failure")
	}
}

func TestChat_GroundsReplyInStoredSummary(t *testing.T) {
	g := &fakeGenerator{output: "Post two shorts a week and track retention."}
	svc, _, profiles := newTestCoachingService(coachingPlatform(), g)

	profiles.rows[testChannelID] = &model.CreatorProfile{
		ChannelID:      testChannelID,
		FutureGoals:    "quit the day job",
		ChannelSummary: "A woodworking channel with a loyal weekly audience.",
	}

	reply, err := svc.Chat(context.Background(), testChannelID, "how do I grow faster?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Post two shorts a week and track retention." {
		t.Errorf("reply = %q", reply)
	}

	prompt := g.prompts[0]
	for _, want := range []string{"loyal weekly audience", "quit the day job", "how do I grow faster?"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("chat prompt missing %q", want)
		}
	}
}

func TestChat_WithoutProfile(t *testing.T) {
	svc, _, _ := newTestCoachingService(coachingPlatform(), &fakeGenerator{output: "hi"})

	_, err := svc.Chat(context.Background(), testChannelID, "hello?")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestChat_WithoutSummary(t *testing.T) {
	g := &fakeGenerator{output: "hi"}
	svc, _, profiles := newTestCoachingService(coachingPlatform(), g)

	profiles.rows[testChannelID] = &model.CreatorProfile{ChannelID: testChannelID}

	_, err := svc.Chat(context.Background(), testChannelID, "hello?")
	if !errors.Is(err, ErrSummaryMissing) {
		t.Fatalf("err = %v, want ErrSummaryMissing", err)
	}
	if g.calls != 0 {
		t.Errorf("generator calls = %d, want 0", g.calls)
	}
}
