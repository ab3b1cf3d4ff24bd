package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/channelscope/channelscope-go/internal/cache"
	"github.com/channelscope/channelscope-go/internal/model"
)

const testChannelID = "UCtest123456789"

const analysisOutput = "```json\n" + `{
  "summary": "A channel about practical woodworking.",
  "themes": ["woodworking", "tools", "shop projects"],
  "target_audience": "hobbyist makers",
  "content_style": "hands-on tutorials",
  "upload_frequency": "weekly",
  "confidence": 0.9
}` + "\n```"

func newTestAnalysisService(p *fakePlatform, g *fakeGenerator) (*AnalysisService, *fakeAnalysisStore, *fakeVideoStore) {
	analyses := newFakeAnalysisStore()
	videos := &fakeVideoStore{}
	svc := NewAnalysisService(testConfig(), cache.NewMemory(), newFakeChannelStore(), videos, analyses, p, g)
	return svc, analyses, videos
}

func TestAnalyze_FreshAnalysis(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := testCatalog(40, base)
	p := &fakePlatform{
		channelID: testChannelID,
		meta:      testMetadata(testChannelID),
		catalog:   catalog,
		videos:    testVideos(catalog, testChannelID),
	}
	g := &fakeGenerator{output: analysisOutput}
	svc, analyses, videoStore := newTestAnalysisService(p, g)

	res, err := svc.Analyze(context.Background(), "https://youtube.com/@testchannel")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.Source != SourceFresh {
		t.Errorf("Source = %q, want %q", res.Source, SourceFresh)
	}
	a := res.Analysis
	if a.Summary != "A channel about practical woodworking." {
		t.Errorf("Summary = %q", a.Summary)
	}
	if len(a.Themes) != 3 {
		t.Errorf("Themes = %v", a.Themes)
	}
	if a.ConfidenceScore != 0.9 {
		t.Errorf("ConfidenceScore = %v, want 0.9", a.ConfidenceScore)
	}
	if a.ModelVersion != "fake-model" {
		t.Errorf("ModelVersion = %q", a.ModelVersion)
	}
	if a.AnalyzedVideosCount != 40 || a.TotalVideosCount != 40 {
		t.Errorf("counts = %d/%d, want 40/40", a.AnalyzedVideosCount, a.TotalVideosCount)
	}
	if !a.ExpiresAt.Equal(a.AnalyzedAt.Add(30 * 24 * time.Hour)) {
		t.Errorf("ExpiresAt = %v, want analyzed_at + 30d", a.ExpiresAt)
	}
	if analyses.upsertCalls != 1 {
		t.Errorf("upsertCalls = %d, want 1", analyses.upsertCalls)
	}
	if len(videoStore.inserted) != 40 {
		t.Errorf("inserted videos = %d, want 40", len(videoStore.inserted))
	}
	if g.calls != 1 {
		t.Errorf("generator calls = %d, want 1", g.calls)
	}
}

func TestAnalyze_SecondCallServedWithoutCollaborators(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := testCatalog(40, base)
	p := &fakePlatform{
		channelID: testChannelID,
		meta:      testMetadata(testChannelID),
		catalog:   catalog,
		videos:    testVideos(catalog, testChannelID),
	}
	g := &fakeGenerator{output: analysisOutput}
	svc, _, _ := newTestAnalysisService(p, g)

	if _, err := svc.Analyze(context.Background(), "https://youtube.com/@testchannel"); err != nil {
		t.Fatalf("first Analyze: %v", err)
	}

	res, err := svc.Analyze(context.Background(), "https://youtube.com/@testchannel")
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if res.Source != SourceCache {
		t.Errorf("Source = %q, want %q", res.Source, SourceCache)
	}
	if g.calls != 1 {
		t.Errorf("generator calls = %d, want 1 (second call must not regenerate)", g.calls)
	}
	if p.resolveCalls != 1 {
		t.Errorf("resolveCalls = %d, want 1 (mapping cached)", p.resolveCalls)
	}
	if p.catalogCalls != 1 {
		t.Errorf("catalogCalls = %d, want 1", p.catalogCalls)
	}
}

func TestAnalyze_StoreHitSkipsGeneration(t *testing.T) {
	p := &fakePlatform{channelID: testChannelID, meta: testMetadata(testChannelID)}
	g := &fakeGenerator{output: analysisOutput}
	svc, analyses, _ := newTestAnalysisService(p, g)

	now := time.Now()
	analyses.rows[testChannelID] = &model.ChannelAnalysis{
		ChannelID:  testChannelID,
		Summary:    "existing",
		AnalyzedAt: now.Add(-24 * time.Hour),
		ExpiresAt:  now.Add(29 * 24 * time.Hour),
	}

	res, err := svc.Analyze(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Source != SourceStore {
		t.Errorf("Source = %q, want %q", res.Source, SourceStore)
	}
	if res.Analysis.Summary != "existing" {
		t.Errorf("Summary = %q, want stored record", res.Analysis.Summary)
	}
	if g.calls != 0 {
		t.Errorf("generator calls = %d, want 0", g.calls)
	}
}

func TestAnalyze_ExpiredStoredRecordTriggersFreshRun(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := testCatalog(10, base)
	p := &fakePlatform{
		channelID: testChannelID,
		meta:      testMetadata(testChannelID),
		catalog:   catalog,
		videos:    testVideos(catalog, testChannelID),
	}
	g := &fakeGenerator{output: analysisOutput}
	svc, analyses, _ := newTestAnalysisService(p, g)

	now := time.Now()
	analyses.rows[testChannelID] = &model.ChannelAnalysis{
		ChannelID:  testChannelID,
		Summary:    "ancient",
		AnalyzedAt: now.Add(-40 * 24 * time.Hour),
		ExpiresAt:  now.Add(-10 * 24 * time.Hour),
	}

	res, err := svc.Analyze(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Source != SourceFresh {
		t.Errorf("Source = %q, want %q", res.Source, SourceFresh)
	}
	if g.calls != 1 {
		t.Errorf("generator calls = %d, want 1", g.calls)
	}
	if analyses.rows[testChannelID].Summary == "ancient" {
		t.Error("stored record not overwritten by fresh analysis")
	}
}

func TestAnalyze_EmptyCatalog(t *testing.T) {
	p := &fakePlatform{channelID: testChannelID, meta: testMetadata(testChannelID)}
	g := &fakeGenerator{output: analysisOutput}
	svc, analyses, _ := newTestAnalysisService(p, g)

	_, err := svc.Analyze(context.Background(), testChannelID)
	if !errors.Is(err, ErrNoVideosFound) {
		t.Fatalf("err = %v, want ErrNoVideosFound", err)
	}
	if analyses.upsertCalls != 0 {
		t.Errorf("upsertCalls = %d, want 0 (no record on failure)", analyses.upsertCalls)
	}
	if g.calls != 0 {
		t.Errorf("generator calls = %d, want 0", g.calls)
	}
}

func TestAnalyze_UnresolvableReference(t *testing.T) {
	p := &fakePlatform{channelID: ""}
	svc, _, _ := newTestAnalysisService(p, &fakeGenerator{})

	_, err := svc.Analyze(context.Background(), "https://youtube.com/@doesnotexist")
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
}

func TestAnalyze_ChannelGone(t *testing.T) {
	p := &fakePlatform{channelID: testChannelID, meta: nil}
	svc, _, _ := newTestAnalysisService(p, &fakeGenerator{})

	_, err := svc.Analyze(context.Background(), testChannelID)
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("err = %v, want ErrChannelNotFound", err)
	}
}

func TestAnalyze_MalformedModelOutputLeavesStoreUntouched(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := testCatalog(10, base)
	p := &fakePlatform{
		channelID: testChannelID,
		meta:      testMetadata(testChannelID),
		catalog:   catalog,
		videos:    testVideos(catalog, testChannelID),
	}
	g := &fakeGenerator{output: "I could not analyze this channel, sorry."}
	svc, analyses, _ := newTestAnalysisService(p, g)

	_, err := svc.Analyze(context.Background(), testChannelID)
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("err = %v, want ErrAnalysisFailed", err)
	}
	if analyses.upsertCalls != 0 {
		t.Errorf("upsertCalls = %d, want 0", analyses.upsertCalls)
	}
}

func TestAnalyze_GeneratorErrorWrapped(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := testCatalog(5, base)
	p := &fakePlatform{
		channelID: testChannelID,
		meta:      testMetadata(testChannelID),
		catalog:   catalog,
		videos:    testVideos(catalog, testChannelID),
	}
	g := &fakeGenerator{err: errors.New("quota exceeded")}
	svc, _, _ := newTestAnalysisService(p, g)

	_, err := svc.Analyze(context.Background(), testChannelID)
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("err = %v, want ErrAnalysisFailed", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want wrapped cause", err)
	}
}

func TestAnalyze_MissingConfidenceDefaults(t *testing.T) {
	output := `{"summary": "s", "themes": ["t"], "target_audience": "a", "content_style": "c", "upload_frequency": "f"}`
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := testCatalog(5, base)
	p := &fakePlatform{
		channelID: testChannelID,
		meta:      testMetadata(testChannelID),
		catalog:   catalog,
		videos:    testVideos(catalog, testChannelID),
	}
	svc, _, _ := newTestAnalysisService(p, &fakeGenerator{output: output})

	res, err := svc.Analyze(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Analysis.ConfidenceScore != defaultConfidence {
		t.Errorf("ConfidenceScore = %v, want %v", res.Analysis.ConfidenceScore, defaultConfidence)
	}
}

func TestAnalyze_ConfidenceClamped(t *testing.T) {
	output := `{"summary": "s", "themes": ["t"], "target_audience": "a", "content_style": "c", "upload_frequency": "f", "confidence": 3.5}`
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := testCatalog(5, base)
	p := &fakePlatform{
		channelID: testChannelID,
		meta:      testMetadata(testChannelID),
		catalog:   catalog,
		videos:    testVideos(catalog, testChannelID),
	}
	svc, _, _ := newTestAnalysisService(p, &fakeGenerator{output: output})

	res, err := svc.Analyze(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Analysis.ConfidenceScore != 1 {
		t.Errorf("ConfidenceScore = %v, want clamped to 1", res.Analysis.ConfidenceScore)
	}
}

func TestFindExisting_AbsentIsNilNil(t *testing.T) {
	p := &fakePlatform{channelID: testChannelID, meta: testMetadata(testChannelID)}
	svc, _, _ := newTestAnalysisService(p, &fakeGenerator{})

	res, err := svc.FindExisting(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("FindExisting: %v", err)
	}
	if res != nil {
		t.Errorf("res = %+v, want nil", res)
	}
}

func TestFindExisting_NeverGenerates(t *testing.T) {
	p := &fakePlatform{channelID: testChannelID, meta: testMetadata(testChannelID)}
	g := &fakeGenerator{output: analysisOutput}
	svc, analyses, _ := newTestAnalysisService(p, g)

	now := time.Now()
	analyses.rows[testChannelID] = &model.ChannelAnalysis{
		ChannelID:  testChannelID,
		Summary:    "stale but present",
		AnalyzedAt: now.Add(-60 * 24 * time.Hour),
		ExpiresAt:  now.Add(-30 * 24 * time.Hour),
	}

	res, err := svc.FindExisting(context.Background(), testChannelID)
	if err != nil {
		t.Fatalf("FindExisting: %v", err)
	}
	if res == nil || res.Analysis.Summary != "stale but present" {
		t.Fatalf("res = %+v, want the stale stored record", res)
	}
	if res.Analysis.Freshness(now) != model.FreshnessStale {
		t.Errorf("Freshness = %q, want stale", res.Analysis.Freshness(now))
	}
	if g.calls != 0 {
		t.Errorf("generator calls = %d, want 0", g.calls)
	}
}

func TestResolveChannelID_MappingIsMonotonic(t *testing.T) {
	p := &fakePlatform{channelID: testChannelID}
	svc, _, _ := newTestAnalysisService(p, &fakeGenerator{})

	id1, err := svc.ResolveChannelID(context.Background(), "  https://youtube.com/@testchannel  ")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	// Platform answer changes; the cached mapping must not.
	p.channelID = "UCsomethingelse"
	id2, err := svc.ResolveChannelID(context.Background(), "https://youtube.com/@testchannel")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if id1 != testChannelID || id2 != testChannelID {
		t.Errorf("ids = %q, %q; want stable %q", id1, id2, testChannelID)
	}
	if p.resolveCalls != 1 {
		t.Errorf("resolveCalls = %d, want 1", p.resolveCalls)
	}
}
