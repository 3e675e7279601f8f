package filters

import (
	"context"

	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Cache reads the materialized filter-value projection. It is refreshed
// out of band; a missing projection is domain.ErrNotFound.
type Cache interface {
	Get(ctx context.Context) (domres.FilterValues, error)
}

// Aggregator computes distinct filter values live from the resource
// collection. Functionally equivalent to the cache, only slower.
type Aggregator interface {
	DistinctFilterValues(ctx context.Context) (domres.FilterValues, error)
}
