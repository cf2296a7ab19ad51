package pool

import (
	"context"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
)

type Store interface {
	// Put creates a new pool record. ErrPoolExists is returned if a pool
	// already exists at the address or for the mint pair, making this the
	// compare-and-create primitive for pool initialization.
	Put(ctx context.Context, record *Record) error

	// Update saves an existing pool's state. The update is only applied if
	// the record's slot is strictly greater than what's stored, otherwise
	// ErrStalePoolState is returned.
	Update(ctx context.Context, record *Record) error

	// GetByAddress gets a pool record by the pool's state address
	GetByAddress(ctx context.Context, address string) (*Record, error)

	// GetByMints gets a pool record by its ordered mint pair
	GetByMints(ctx context.Context, tokenAMint, tokenBMint string) (*Record, error)

	// GetAllByAuthority gets all pool records managed by an authority
	GetAllByAuthority(ctx context.Context, authority string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*Record, error)

	// Count gets the total count of pool records
	Count(ctx context.Context) (uint64, error)
}
