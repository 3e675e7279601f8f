// Package filtercache reads the materialized filter-value projection. The
// projection is refreshed out of band; this package never writes it.
package filtercache

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// currentDocID is the well-known key of the single materialized document.
const currentDocID = "current"

// MongoCache implements usecase/filters.Cache over the materialized view
// collection maintained by the external refresh job.
type MongoCache struct {
	coll *mongo.Collection
}

// NewMongoCache creates a cache reader over the filter view collection.
func NewMongoCache(coll *mongo.Collection) *MongoCache {
	return &MongoCache{coll: coll}
}

type cachedDoc struct {
	Filters   domres.FilterValues `bson:"filters"`
	Timestamp primitive.DateTime  `bson:"timestamp"`
}

// Get reads the current projection. A missing document is domain.ErrNotFound.
func (c *MongoCache) Get(ctx context.Context) (domres.FilterValues, error) {
	var doc cachedDoc
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: currentDocID}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domres.FilterValues{}, fmt.Errorf("%w: no materialized filter values", domain.ErrNotFound)
		}
		return domres.FilterValues{}, fmt.Errorf("%w: read filter view: %v", domain.ErrDependencyFailure, err)
	}
	return doc.Filters, nil
}
