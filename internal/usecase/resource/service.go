// Package resource resolves id+version requests against the store.
package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Service decides which stored documents satisfy an id+version request.
type Service struct {
	repo Repository
}

// New creates a version resolver.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the documents for an id. With version == "" it returns
// every stored version, newest first, each tagged with the computed
// latest_version. With a concrete version it returns the single exact match.
// Zero matches in either case is domain.ErrNotFound.
func (s *Service) Resolve(ctx context.Context, id, version string) ([]domres.Resource, error) {
	id = strings.TrimSpace(id)
	if err := domres.ValidateID(id); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, err)
	}

	if version == "" {
		return s.resolveAll(ctx, id)
	}

	version = strings.TrimSpace(version)
	if err := domres.ValidateVersion(version); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, err)
	}

	docs, err := s.repo.Find(ctx, id, version)
	if err != nil {
		return nil, fmt.Errorf("find resource: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: resource %q with version %q", domain.ErrNotFound, id, version)
	}
	return docs, nil
}

func (s *Service) resolveAll(ctx context.Context, id string) ([]domres.Resource, error) {
	docs, err := s.repo.FindVersions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find resource versions: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: resource %q", domain.ErrNotFound, id)
	}

	latest := domres.Latest(docs)
	for i := range docs {
		docs[i].LatestVersion = latest
	}
	domres.SortByVersionDesc(docs)
	return docs, nil
}
