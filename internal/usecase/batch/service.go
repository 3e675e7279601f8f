// Package batch resolves multiple id+version pairs in one request with
// all-or-nothing error accounting.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
	"github.com/gem5-vision/resources-api/internal/metrics"
)

// MaxBatchSize is the maximum number of id+version pairs per request.
const MaxBatchSize = 40

// AllVersions is the version sentinel requesting every version of an id.
// Matched case-insensitively.
const AllVersions = "None"

// Service orchestrates the version resolver over a list of pairs.
type Service struct {
	resolver Resolver
}

// New creates a batch resolver.
func New(resolver Resolver) *Service {
	return &Service{resolver: resolver}
}

// ResolveBatch resolves each (ids[i], versions[i]) pair and returns the
// per-pair document lists in input order. Length mismatch, an empty batch,
// or more than MaxBatchSize pairs fail before any store round-trip. If any
// pair resolves to zero documents the whole batch fails with a
// MissingResourcesError naming every missing id.
func (s *Service) ResolveBatch(ctx context.Context, ids, versions []string) ([][]domres.Resource, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one 'id' parameter is required", domain.ErrInvalidArgument)
	}
	if len(ids) != len(versions) {
		return nil, fmt.Errorf(
			"%w: each 'id' parameter must have a corresponding 'resource_version' parameter "+
				"(use %q to fetch all versions)", domain.ErrInvalidArgument, AllVersions,
		)
	}
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("%w: at most %d resources per batch", domain.ErrInvalidArgument, MaxBatchSize)
	}

	results := make([][]domres.Resource, len(ids))
	var missing []string
	for i, id := range ids {
		version := versions[i]
		if strings.EqualFold(strings.TrimSpace(version), AllVersions) {
			version = ""
		}

		docs, err := s.resolver.Resolve(ctx, id, version)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			return nil, err
		}
		results[i] = docs
	}

	if len(missing) > 0 {
		return nil, domain.NewMissingResources(missing)
	}
	metrics.BatchPairsTotal.Add(float64(len(ids)))
	return results, nil
}
