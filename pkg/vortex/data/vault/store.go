package vault

import (
	"context"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
)

type Store interface {
	// Put creates a new vault record. ErrVaultExists is returned if a vault
	// already exists at the address.
	Put(ctx context.Context, record *Record) error

	// Save saves a vault's balance. The update is only applied if the
	// record's slot is strictly greater than what's stored, otherwise
	// ErrStaleVaultState is returned.
	Save(ctx context.Context, record *Record) error

	// Get gets a vault record by its address
	Get(ctx context.Context, address string) (*Record, error)

	// GetBatch is like Get, but for multiple vaults. If any one vault is
	// missing, ErrVaultNotFound is returned.
	GetBatch(ctx context.Context, addresses ...string) (map[string]*Record, error)

	// GetAllByOwner gets all vault records for an owner
	GetAllByOwner(ctx context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*Record, error)

	// Count gets the total count of vault records
	Count(ctx context.Context) (uint64, error)
}
