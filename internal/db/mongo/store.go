// Package mongo owns the MongoDB connection lifecycle for the resource store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds connection parameters for the document store.
type Config struct {
	URI                  string
	Database             string
	ResourcesCollection  string
	FilterViewCollection string
}

// Store wraps a MongoDB client with handles to the collections the API reads.
type Store struct {
	client     *mongo.Client
	resources  *mongo.Collection
	filterView *mongo.Collection
}

// NewStore connects to MongoDB.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	db := client.Database(cfg.Database)
	return &Store{
		client:     client,
		resources:  db.Collection(cfg.ResourcesCollection),
		filterView: db.Collection(cfg.FilterViewCollection),
	}, nil
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or the timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Resources returns the resource collection handle.
func (s *Store) Resources() *mongo.Collection { return s.resources }

// FilterView returns the materialized filter-value collection handle.
func (s *Store) FilterView() *mongo.Collection { return s.filterView }
