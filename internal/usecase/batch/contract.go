package batch

import (
	"context"

	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Resolver resolves a single id+version pair (version "" means all versions).
type Resolver interface {
	Resolve(ctx context.Context, id, version string) ([]domres.Resource, error)
}
