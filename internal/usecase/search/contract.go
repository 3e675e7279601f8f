package search

import (
	"context"

	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
	"github.com/gem5-vision/resources-api/internal/domain/search/request"
)

// Repository defines the storage contract for ranked search.
//
// Search and Count run over the same predicate (text term, filters, and
// latest-version dedup); Count ignores ordering and pagination. The two
// calls are separate round-trips, so a mutation between them can skew the
// page against the total. Consistency is best-effort by contract.
type Repository interface {
	Search(ctx context.Context, req request.Request) ([]domres.Resource, error)
	Count(ctx context.Context, req request.Request) (int, error)
}
