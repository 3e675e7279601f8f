// Package filters serves the distinct filter values: cached projection
// first, live aggregation as the equivalent fallback.
package filters

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
	"github.com/gem5-vision/resources-api/internal/metrics"
)

// Service serves filter options. The cache path and the aggregation path
// return the same shape under the same sort contract; callers cannot tell
// which one answered.
type Service struct {
	cache  Cache
	agg    Aggregator
	logger *zap.Logger
}

// New creates a filter-options service.
func New(cache Cache, agg Aggregator, logger *zap.Logger) *Service {
	return &Service{cache: cache, agg: agg, logger: logger}
}

// Options returns the sorted distinct values of category, architecture, and
// gem5_versions. A missing, empty, or failing cache falls through to the
// live aggregation; an aggregation failure surfaces to the caller.
func (s *Service) Options(ctx context.Context) (domres.FilterValues, error) {
	values, err := s.cache.Get(ctx)
	if err == nil && !values.IsEmpty() {
		metrics.FilterCacheTotal.WithLabelValues("hit").Inc()
		return normalize(values), nil
	}
	metrics.FilterCacheTotal.WithLabelValues("fallback").Inc()
	if err != nil {
		s.logger.Warn("filter cache unavailable, falling back to live aggregation", zap.Error(err))
	} else {
		s.logger.Warn("filter cache empty, falling back to live aggregation")
	}

	values, err = s.agg.DistinctFilterValues(ctx)
	if err != nil {
		return domres.FilterValues{}, fmt.Errorf("aggregate filter values: %w", err)
	}
	return normalize(values), nil
}

// normalize applies the output contract: category and architecture ascending
// with empty entries dropped, gem5_versions descending by semantic version.
func normalize(v domres.FilterValues) domres.FilterValues {
	v.Category = sortedNonEmpty(v.Category)
	v.Architecture = sortedNonEmpty(v.Architecture)

	versions := make([]string, 0, len(v.Gem5Versions))
	for _, g := range v.Gem5Versions {
		if g != "" {
			versions = append(versions, g)
		}
	}
	domres.SortVersionsDesc(versions)
	v.Gem5Versions = versions
	return v
}

func sortedNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
