// Package resource implements id+version lookups against the resource
// collection.
package resource

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gem5-vision/resources-api/internal/domain"
	domres "github.com/gem5-vision/resources-api/internal/domain/resource"
)

// Repo implements usecase/resource.Repository.
type Repo struct {
	coll *mongo.Collection
}

// New creates a resource repository over the resource collection.
func New(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll}
}

// FindVersions returns every stored document with the given id.
func (r *Repo) FindVersions(ctx context.Context, id string) ([]domres.Resource, error) {
	return r.find(ctx, IDFilter(id))
}

// Find returns the documents matching an exact id+version pair.
func (r *Repo) Find(ctx context.Context, id, version string) ([]domres.Resource, error) {
	return r.find(ctx, IDVersionFilter(id, version))
}

func (r *Repo) find(ctx context.Context, filter bson.D) ([]domres.Resource, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(Projection()))
	if err != nil {
		return nil, fmt.Errorf("%w: find resources: %v", domain.ErrDependencyFailure, err)
	}
	defer cursor.Close(ctx)

	var docs []domres.Resource
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode resources: %v", domain.ErrDependencyFailure, err)
	}
	return docs, nil
}
