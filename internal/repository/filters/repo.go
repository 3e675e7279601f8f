// Package filters implements the live distinct-value aggregation used when
// the materialized filter view cannot serve.
package filters

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Repo implements usecase/filters.Aggregator.
type Repo struct {
	coll *mongo.Collection
}

// New creates a live filter-value aggregator over the resource collection.
func New(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll}
}

// DistinctFilterValues collects the distinct categories, architectures, and
// gem5 versions in one aggregation. Sorting is left to the caller so the
// cache path and this path share one normalization.
func (r *Repo) DistinctFilterValues(ctx context.Context) (domres.FilterValues, error) {
	cursor, err := r.coll.Aggregate(ctx, DistinctValuesPipeline())
	if err != nil {
		return domres.FilterValues{}, fmt.Errorf("%w: aggregate filter values: %v", domain.ErrDependencyFailure, err)
	}
	defer cursor.Close(ctx)

	var out []domres.FilterValues
	if err := cursor.All(ctx, &out); err != nil {
		return domres.FilterValues{}, fmt.Errorf("%w: decode filter values: %v", domain.ErrDependencyFailure, err)
	}
	if len(out) == 0 {
		return domres.FilterValues{}, nil
	}
	return out[0], nil
}

// DistinctValuesPipeline unwinds gem5_versions (keeping documents without
// one), gathers distinct values per field, and strips nulls produced by
// documents missing a field.
func DistinctValuesPipeline() mongo.Pipeline {
	dropNulls := func(field string) bson.D {
		return bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: "$" + field},
			{Key: "as", Value: "v"},
			{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$v", nil}}}},
		}}}
	}

	return mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$gem5_versions"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "category", Value: bson.D{{Key: "$addToSet", Value: "$category"}}},
			{Key: "architecture", Value: bson.D{{Key: "$addToSet", Value: "$architecture"}}},
			{Key: "gem5_versions", Value: bson.D{{Key: "$addToSet", Value: "$gem5_versions"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: dropNulls("category")},
			{Key: "architecture", Value: dropNulls("architecture")},
			{Key: "gem5_versions", Value: dropNulls("gem5_versions")},
		}}},
	}
}
