// Package workload answers reverse-dependency lookups: which workloads
// declare a given resource id among their dependencies.
package workload

import (
	"context"
	"fmt"
	"strings"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Service runs the dependency graph query.
type Service struct {
	repo Repository
}

// New creates a dependency-lookup service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Dependents returns the workloads depending on the given resource id.
// No dependents is an empty slice, not an error; the id itself need not
// exist as a stored resource.
func (s *Service) Dependents(ctx context.Context, resourceID string) ([]domres.WorkloadRef, error) {
	resourceID = strings.TrimSpace(resourceID)
	if err := domres.ValidateID(resourceID); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, err)
	}

	refs, err := s.repo.FindDependents(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("find dependent workloads: %w", err)
	}
	if refs == nil {
		refs = []domres.WorkloadRef{}
	}
	return refs, nil
}
