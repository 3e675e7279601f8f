// Package workload implements the reverse-dependency aggregation: which
// workload documents declare a given resource id among their dependencies.
package workload

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Repo implements usecase/workload.Repository.
type Repo struct {
	coll *mongo.Collection
}

// New creates a workload repository over the resource collection.
func New(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll}
}

// FindDependents runs the reverse-adjacency aggregation. Dependency edges
// live denormalized inside workload documents as a parameter-name -> id map,
// so the pipeline unwinds that map and matches on its values.
func (r *Repo) FindDependents(ctx context.Context, resourceID string) ([]domres.WorkloadRef, error) {
	cursor, err := r.coll.Aggregate(ctx, DependentsPipeline(resourceID))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate dependents: %v", domain.ErrDependencyFailure, err)
	}
	defer cursor.Close(ctx)

	var refs []domres.WorkloadRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("%w: decode dependents: %v", domain.ErrDependencyFailure, err)
	}
	return refs, nil
}

// DependentsPipeline matches workload-category documents, unwinds their
// dependency declarations, keeps those referencing the id, and groups to
// distinct workload ids in ascending order.
func DependentsPipeline(resourceID string) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "category", Value: "workload"}}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "resources", Value: bson.D{{Key: "$objectToArray", Value: "$resources"}}},
		}}},
		bson.D{{Key: "$unwind", Value: "$resources"}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "resources.v", Value: resourceID}}}},
		bson.D{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$id"}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
