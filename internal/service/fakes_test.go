package service

import (
	"context"
	"errors"
	"time"

	"github.com/channelscope/channelscope-go/internal/config"
	"github.com/channelscope/channelscope-go/internal/model"
)

// Collaborator fakes. Each counts its calls so tests can assert which tiers
// of the pipeline actually ran.

type fakePlatform struct {
	channelID string
	meta      *model.ChannelMetadata
	catalog   []model.CatalogEntry
	videos    []model.Video

	resolveCalls int
	metaCalls    int
	catalogCalls int
	detailCalls  int
}

func (p *fakePlatform) ResolveIdentity(_ context.Context, _ string) (string, error) {
	p.resolveCalls++
	return p.channelID, nil
}

func (p *fakePlatform) ChannelMetadata(_ context.Context, _ string) (*model.ChannelMetadata, error) {
	p.metaCalls++
	return p.meta, nil
}

func (p *fakePlatform) Catalog(_ context.Context, _ string, max int64) ([]model.CatalogEntry, error) {
	p.catalogCalls++
	if int64(len(p.catalog)) > max {
		return p.catalog[:max], nil
	}
	return p.catalog, nil
}

func (p *fakePlatform) VideoDetails(_ context.Context, ids []string) ([]model.Video, error) {
	p.detailCalls++
	byID := make(map[string]model.Video, len(p.videos))
	for _, v := range p.videos {
		byID[v.VideoID] = v
	}
	var out []model.Video
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeGenerator struct {
	output string
	err    error
	calls  int
	// prompts records what each call was asked, for content assertions.
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt, _ string, _ float32, _ int32) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

func (g *fakeGenerator) Model() string { return "fake-model" }

type fakeChannelStore struct {
	rows map[string]*model.ChannelMetadata
}

func newFakeChannelStore() *fakeChannelStore {
	return &fakeChannelStore{rows: make(map[string]*model.ChannelMetadata)}
}

func (s *fakeChannelStore) FindByChannelID(_ context.Context, id string) (*model.ChannelMetadata, error) {
	return s.rows[id], nil
}

func (s *fakeChannelStore) Upsert(_ context.Context, m *model.ChannelMetadata) error {
	cp := *m
	s.rows[m.ChannelID] = &cp
	return nil
}

type fakeVideoStore struct {
	inserted []model.Video
}

func (s *fakeVideoStore) InsertIfAbsent(_ context.Context, videos []model.Video) error {
	s.inserted = append(s.inserted, videos...)
	return nil
}

type fakeAnalysisStore struct {
	rows        map[string]*model.ChannelAnalysis
	upsertCalls int
}

func newFakeAnalysisStore() *fakeAnalysisStore {
	return &fakeAnalysisStore{rows: make(map[string]*model.ChannelAnalysis)}
}

func (s *fakeAnalysisStore) FindByChannelID(_ context.Context, id string) (*model.ChannelAnalysis, error) {
	return s.rows[id], nil
}

func (s *fakeAnalysisStore) Upsert(_ context.Context, a *model.ChannelAnalysis) error {
	s.upsertCalls++
	cp := *a
	s.rows[a.ChannelID] = &cp
	return nil
}

type fakeSessionStore struct {
	rows        map[string]*model.CoachingSession
	insertCalls int
	updateCalls int
	updateErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{rows: make(map[string]*model.CoachingSession)}
}

func (s *fakeSessionStore) FindBySessionID(_ context.Context, id string) (*model.CoachingSession, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (s *fakeSessionStore) Insert(_ context.Context, sess *model.CoachingSession) error {
	s.insertCalls++
	if _, exists := s.rows[sess.SessionID]; exists {
		return errors.New("duplicate session id")
	}
	cp := *sess
	s.rows[sess.SessionID] = &cp
	return nil
}

func (s *fakeSessionStore) Update(_ context.Context, sess *model.CoachingSession) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *sess
	s.rows[sess.SessionID] = &cp
	return nil
}

func (s *fakeSessionStore) ListByChannel(_ context.Context, channelID string) ([]model.CoachingSession, error) {
	var out []model.CoachingSession
	for _, row := range s.rows {
		if row.ChannelID == channelID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeProfileStore struct {
	rows map[string]*model.CreatorProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{rows: make(map[string]*model.CreatorProfile)}
}

func (s *fakeProfileStore) FindByChannelID(_ context.Context, id string) (*model.CreatorProfile, error) {
	return s.rows[id], nil
}

func (s *fakeProfileStore) Upsert(_ context.Context, p *model.CreatorProfile) error {
	cp := *p
	s.rows[p.ChannelID] = &cp
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		GeminiTemperature:     1.0,
		GeminiMaxOutputTokens: 2048,
		AnalysisExpiry:        30 * 24 * time.Hour,
		MaxVideosToAnalyze:    50,
		CatalogFetchLimit:     500,
		AnalysisCacheTTL:      7 * 24 * time.Hour,
		MetadataCacheTTL:      7 * 24 * time.Hour,
		URLMappingTTL:         24 * time.Hour,
	}
}

func testMetadata(channelID string) *model.ChannelMetadata {
	return &model.ChannelMetadata{
		ChannelID:        channelID,
		Title:            "Test Channel",
		SubscriberCount:  12000,
		VideoCount:       40,
		ViewCount:        3400000,
		UploadPlaylistID: "UU" + channelID[2:],
	}
}

func testCatalog(n int, base time.Time) []model.CatalogEntry {
	entries := make([]model.CatalogEntry, n)
	for i := range entries {
		at := base.Add(-time.Duration(i) * 24 * time.Hour)
		entries[i] = model.CatalogEntry{
			VideoID:     videoID(i),
			Title:       "Video " + videoID(i),
			PublishedAt: &at,
		}
	}
	return entries
}

func testVideos(catalog []model.CatalogEntry, channelID string) []model.Video {
	videos := make([]model.Video, len(catalog))
	for i, e := range catalog {
		videos[i] = model.Video{
			VideoID:     e.VideoID,
			ChannelID:   channelID,
			Title:       e.Title,
			PublishedAt: e.PublishedAt,
			ViewCount:   int64(1000 * (i + 1)),
		}
	}
	return videos
}

func videoID(i int) string {
	return string(rune('a'+i/26)) + string(rune('a'+i%26)) + "-video"
}
