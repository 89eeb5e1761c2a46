// Package aggregator fans a category search out across every configured VOD
// backend, then merges, deduplicates, shuffles and paginates the combined
// result set. Individual source failures are absorbed; the merge runs only
// after every fetch has finished or timed out.
package aggregator

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"vodmesh/config"
	"vodmesh/models"
)

// trendingSourceCap bounds the fan-out in trending mode to the first sources
// of the configured ordering.
const trendingSourceCap = 3

type Service struct {
	client *fetchClient
}

// NewService creates the aggregation service. timeout bounds each individual
// source fetch; zero selects the default.
func NewService(timeout time.Duration) *Service {
	return &Service{client: newFetchClient(timeout)}
}

// Aggregate runs a full-mode aggregation: every source is queried with the
// category's keyword, the merged set is post-filtered, deduplicated per
// source, shuffled and sliced to [start, start+limit). An empty source list
// yields an empty page, not an error.
func (s *Service) Aggregate(ctx context.Context, sources []config.SourceConfig, category string, start, limit int) models.AggregatedPage {
	plan := planCategory(category)
	return s.run(ctx, sources, plan, fullDedupKey, start, limit)
}

// Trending runs the restricted aggregation behind the hot feed: only the
// first few sources are queried and the dedup key ignores provenance, so the
// same title from two sources collapses into one entry.
func (s *Service) Trending(ctx context.Context, sources []config.SourceConfig, start, limit int) models.AggregatedPage {
	if len(sources) > trendingSourceCap {
		sources = sources[:trendingSourceCap]
	}
	plan := planCategory("all")
	return s.run(ctx, sources, plan, trendingDedupKey, start, limit)
}

func (s *Service) run(ctx context.Context, sources []config.SourceConfig, plan categoryPlan, key func(models.VideoRecord) string, start, limit int) models.AggregatedPage {
	page := models.AggregatedPage{Items: []models.VideoRecord{}, Start: start, Limit: limit}
	if len(sources) == 0 {
		return page
	}

	// One task per source, each owning its own slot; the Wait is a barrier,
	// never a race-to-first.
	results := make([][]models.VideoRecord, len(sources))
	p := pool.New().WithMaxGoroutines(len(sources))
	for i, src := range sources {
		i, src := i, src
		p.Go(func() {
			results[i] = s.searchSource(ctx, src, plan.keyword)
		})
	}
	p.Wait()

	merged := lo.Flatten(results)
	if !plan.all {
		merged = lo.Filter(merged, func(rec models.VideoRecord, _ int) bool {
			return plan.match(rec)
		})
	}

	// UniqBy keeps the first-seen record per key.
	merged = lo.UniqBy(merged, key)

	// Uniform reshuffle per request; pagination slices the shuffled order.
	rand.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})

	if start < 0 {
		start = 0
	}
	if start >= len(merged) || limit <= 0 {
		return page
	}
	end := start + limit
	if end > len(merged) {
		end = len(merged)
	}
	page.Items = merged[start:end]
	return page
}

// fullDedupKey collapses exact repeats from the same source only; the same
// title carried by two sources stays twice, multi-source availability is a
// feature.
func fullDedupKey(rec models.VideoRecord) string {
	return strings.ToLower(rec.Title) + "-" + rec.Year + "-" + rec.SourceKey
}

// trendingDedupKey is source-agnostic, favoring variety over provenance.
func trendingDedupKey(rec models.VideoRecord) string {
	return strings.ToLower(rec.Title) + "-" + rec.Year + "-" + rec.Class
}
