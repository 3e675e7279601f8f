// Package search implements ranked full-text search over the resource
// collection via aggregation pipelines.
package search

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
	"github.com/gem5-vision/resources-api/internal/domain/search/request"
)

// Repo implements usecase/search.Repository.
type Repo struct {
	coll     *mongo.Collection
	database string
}

// New creates a search repository. database is the provenance label stamped
// onto every returned document.
func New(coll *mongo.Collection, database string) *Repo {
	return &Repo{coll: coll, database: database}
}

// Search runs the page-fetch aggregation and returns the ranked documents.
func (r *Repo) Search(ctx context.Context, req request.Request) ([]domres.Resource, error) {
	cursor, err := r.coll.Aggregate(ctx, fetchPipeline(req))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate search: %v", domain.ErrDependencyFailure, err)
	}
	defer cursor.Close(ctx)

	var docs []domres.Resource
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode search results: %v", domain.ErrDependencyFailure, err)
	}

	for i := range docs {
		docs[i].Database = r.database
	}
	return docs, nil
}

// Count runs the total-count aggregation over the same predicate.
func (r *Repo) Count(ctx context.Context, req request.Request) (int, error) {
	cursor, err := r.coll.Aggregate(ctx, countPipeline(req))
	if err != nil {
		return 0, fmt.Errorf("%w: aggregate count: %v", domain.ErrDependencyFailure, err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		TotalCount int `bson:"totalCount"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("%w: decode count: %v", domain.ErrDependencyFailure, err)
	}
	if len(out) == 0 {
		// $count emits nothing over an empty matched set.
		return 0, nil
	}
	return out[0].TotalCount, nil
}
