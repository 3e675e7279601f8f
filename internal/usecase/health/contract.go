package health

import "context"

// StorePinger checks document-store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks filter-cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
