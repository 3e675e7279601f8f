package resource

import (
	"context"

	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Repository defines the storage contract for id+version resolution.
type Repository interface {
	// FindVersions returns every stored document with the given id.
	FindVersions(ctx context.Context, id string) ([]domres.Resource, error)
	// Find returns the documents matching an exact id+version pair
	// (at most one under the natural-key invariant).
	Find(ctx context.Context, id, version string) ([]domres.Resource, error)
}
