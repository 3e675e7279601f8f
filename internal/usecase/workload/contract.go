package workload

import (
	"context"

	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Repository defines the reverse-dependency query contract.
type Repository interface {
	// FindDependents returns the ids of workload documents whose dependency
	// declarations contain the given resource id.
	FindDependents(ctx context.Context, resourceID string) ([]domres.WorkloadRef, error)
}
