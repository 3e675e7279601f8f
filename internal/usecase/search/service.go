// Package search runs ranked, paginated full-text queries over the
// resource collection.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/gem5-vision/resources-api/internal/domain/search/request"
	"github.com/gem5-vision/resources-api/internal/domain/search/result"
	"github.com/gem5-vision/resources-api/internal/metrics"
)

// Service executes a validated search request: one count round-trip for the
// pre-pagination total, one fetch round-trip for the requested page.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns the requested page and the total match count. A page past
// the last match is an empty page with the true total, not an error.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	start := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	total, err := s.repo.Count(ctx, req)
	if err != nil {
		return result.Page{}, fmt.Errorf("count matches: %w", err)
	}

	if total == 0 || req.Skip() >= total {
		return result.NewPage(nil, total), nil
	}

	docs, err := s.repo.Search(ctx, req)
	if err != nil {
		return result.Page{}, fmt.Errorf("fetch page: %w", err)
	}
	metrics.SearchResultsTotal.Add(float64(len(docs)))
	return result.NewPage(docs, total), nil
}
