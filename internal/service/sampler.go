package service

import "github.com/channelscope/channelscope-go/internal/model"

// Sampling strategy tags returned alongside the selected ids.
const (
	StrategyAllVideos         = "all_videos"
	StrategyRecentDistributed = "recent_distributed"
	StrategyLargeChannel      = "large_channel_sample"
)

// SelectRepresentativeVideos chooses a bounded, deterministic sample out of a
// reverse-chronological catalog. The sample keeps a recency block plus a
// stride-sampled spread over the rest of the history, bounding what gets sent
// to the model while still covering the catalog's full span.
//
//   - N <= max: every video, tagged all_videos
//   - N <= 500: most recent 30 + 20 stride-sampled from index 30
//   - N > 500:  most recent 25 + 25 stride-sampled from index 25
//
// The result never exceeds max and never contains duplicates.
func SelectRepresentativeVideos(catalog []model.CatalogEntry, maxVideos int) ([]string, string) {
	total := len(catalog)

	if total <= maxVideos {
		return catalogIDs(catalog), StrategyAllVideos
	}

	if total <= 500 {
		ids := sampleRecentPlusStride(catalog, 30, (total-30)/20, 20)
		return capIDs(ids, maxVideos), StrategyRecentDistributed
	}

	ids := sampleRecentPlusStride(catalog, 25, total/25, 25)
	return capIDs(ids, maxVideos), StrategyLargeChannel
}

// sampleRecentPlusStride takes the first recentCount entries, then walks the
// remainder with the given stride collecting up to strideCount more. A stride
// below 1 is clamped to 1, so ties always resolve to the earliest index.
func sampleRecentPlusStride(catalog []model.CatalogEntry, recentCount, stride, strideCount int) []string {
	total := len(catalog)
	if recentCount > total {
		recentCount = total
	}
	if stride < 1 {
		stride = 1
	}

	ids := catalogIDs(catalog[:recentCount])
	taken := 0
	for i := recentCount; i < total && taken < strideCount; i += stride {
		ids = append(ids, catalog[i].VideoID)
		taken++
	}
	return ids
}

func catalogIDs(entries []model.CatalogEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.VideoID
	}
	return ids
}

func capIDs(ids []string, max int) []string {
	if len(ids) > max {
		return ids[:max]
	}
	return ids
}
