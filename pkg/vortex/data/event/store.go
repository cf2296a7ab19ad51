package event

import (
	"context"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
)

type Store interface {
	// Put creates a new event record. ErrEventExists is returned if an
	// event already exists with the event id.
	Put(ctx context.Context, record *Record) error

	// Get gets an event record by its event id
	Get(ctx context.Context, eventId string) (*Record, error)

	// GetBySignature gets all event records for a transaction signature
	GetBySignature(ctx context.Context, signature string) ([]*Record, error)

	// GetAllByPool gets all event records for a pool
	GetAllByPool(ctx context.Context, pool string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*Record, error)

	// GetCountByType gets the count of event records of a type
	GetCountByType(ctx context.Context, eventType Type) (uint64, error)
}
