package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ritikbhatt20/vortex/pkg/cache"
	pg "github.com/ritikbhatt20/vortex/pkg/database/postgres"
	"github.com/ritikbhatt20/vortex/pkg/database/query"

	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"

	event_memory_client "github.com/ritikbhatt20/vortex/pkg/vortex/data/event/memory"
	pool_memory_client "github.com/ritikbhatt20/vortex/pkg/vortex/data/pool/memory"
	vault_memory_client "github.com/ritikbhatt20/vortex/pkg/vortex/data/vault/memory"

	event_postgres_client "github.com/ritikbhatt20/vortex/pkg/vortex/data/event/postgres"
	pool_postgres_client "github.com/ritikbhatt20/vortex/pkg/vortex/data/pool/postgres"
	vault_postgres_client "github.com/ritikbhatt20/vortex/pkg/vortex/data/vault/postgres"
)

const (
	maxPoolCacheBudget = 1024
)

type Provider interface {
	// Pools
	// --------------------------------------------------------------------------------
	CreatePool(ctx context.Context, record *pool.Record) error
	UpdatePool(ctx context.Context, record *pool.Record) error
	GetPool(ctx context.Context, address string) (*pool.Record, error)
	GetPoolByMints(ctx context.Context, tokenAMint, tokenBMint string) (*pool.Record, error)
	GetCachedPool(ctx context.Context, address string) (*pool.Record, error)
	GetAllPoolsByAuthority(ctx context.Context, authority string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*pool.Record, error)
	GetPoolCount(ctx context.Context) (uint64, error)

	// Vaults
	// --------------------------------------------------------------------------------
	CreateVault(ctx context.Context, record *vault.Record) error
	SaveVault(ctx context.Context, record *vault.Record) error
	GetVault(ctx context.Context, address string) (*vault.Record, error)
	GetVaultBatch(ctx context.Context, addresses ...string) (map[string]*vault.Record, error)
	GetAllVaultsByOwner(ctx context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*vault.Record, error)

	// Events
	// --------------------------------------------------------------------------------
	CreateEvent(ctx context.Context, record *event.Record) error
	GetEvent(ctx context.Context, eventId string) (*event.Record, error)
	GetEventsBySignature(ctx context.Context, signature string) ([]*event.Record, error)
	GetAllEventsByPool(ctx context.Context, poolAddress string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*event.Record, error)
	GetEventCountByType(ctx context.Context, eventType event.Type) (uint64, error)

	// ExecuteInTx executes fn with a single DB transaction that is scoped to the call.
	// This enables more complex transactions that can span many calls across the provider.
	ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error
}

type provider struct {
	pools  pool.Store
	vaults vault.Store
	events event.Store

	poolCache cache.Cache

	db *sqlx.DB
}

// NewProvider returns a postgres-backed Provider
func NewProvider(dbConfig *pg.Config) (Provider, error) {
	db, err := pg.New(dbConfig)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(time.Hour)
	db.SetConnMaxLifetime(time.Hour)

	return &provider{
		pools:  pool_postgres_client.New(db),
		vaults: vault_postgres_client.New(db),
		events: event_postgres_client.New(db),

		poolCache: cache.NewCache(maxPoolCacheBudget),

		db: sqlx.NewDb(db, "pgx"),
	}, nil
}

// NewTestProvider returns an in memory Provider for tests
func NewTestProvider() Provider {
	return &provider{
		pools:  pool_memory_client.New(),
		vaults: vault_memory_client.New(),
		events: event_memory_client.New(),

		poolCache: cache.NewCache(maxPoolCacheBudget),
	}
}

func (p *provider) ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error {
	if p.db == nil {
		return fn(ctx)
	}

	return pg.ExecuteTxWithinCtx(ctx, p.db, isolation, fn)
}

// Pools
// --------------------------------------------------------------------------------
func (p *provider) CreatePool(ctx context.Context, record *pool.Record) error {
	return p.pools.Put(ctx, record)
}
func (p *provider) UpdatePool(ctx context.Context, record *pool.Record) error {
	return p.pools.Update(ctx, record)
}
func (p *provider) GetPool(ctx context.Context, address string) (*pool.Record, error) {
	return p.pools.GetByAddress(ctx, address)
}
func (p *provider) GetPoolByMints(ctx context.Context, tokenAMint, tokenBMint string) (*pool.Record, error) {
	return p.pools.GetByMints(ctx, tokenAMint, tokenBMint)
}

// GetCachedPool is a read-only lookup for surfaces that can tolerate slightly
// stale pool state, like quoting. Mutations must always use GetPool.
func (p *provider) GetCachedPool(ctx context.Context, address string) (*pool.Record, error) {
	if cached, ok := p.poolCache.Retrieve(address); ok {
		return cached.(*pool.Record).Clone(), nil
	}

	record, err := p.pools.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	p.poolCache.Insert(address, record.Clone(), 1)

	return record, nil
}
func (p *provider) GetAllPoolsByAuthority(ctx context.Context, authority string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*pool.Record, error) {
	return p.pools.GetAllByAuthority(ctx, authority, cursor, limit, direction)
}
func (p *provider) GetPoolCount(ctx context.Context) (uint64, error) {
	return p.pools.Count(ctx)
}

// Vaults
// --------------------------------------------------------------------------------
func (p *provider) CreateVault(ctx context.Context, record *vault.Record) error {
	return p.vaults.Put(ctx, record)
}
func (p *provider) SaveVault(ctx context.Context, record *vault.Record) error {
	return p.vaults.Save(ctx, record)
}
func (p *provider) GetVault(ctx context.Context, address string) (*vault.Record, error) {
	return p.vaults.Get(ctx, address)
}
func (p *provider) GetVaultBatch(ctx context.Context, addresses ...string) (map[string]*vault.Record, error) {
	return p.vaults.GetBatch(ctx, addresses...)
}
func (p *provider) GetAllVaultsByOwner(ctx context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*vault.Record, error) {
	return p.vaults.GetAllByOwner(ctx, owner, cursor, limit, direction)
}

// Events
// --------------------------------------------------------------------------------
func (p *provider) CreateEvent(ctx context.Context, record *event.Record) error {
	return p.events.Put(ctx, record)
}
func (p *provider) GetEvent(ctx context.Context, eventId string) (*event.Record, error) {
	return p.events.Get(ctx, eventId)
}
func (p *provider) GetEventsBySignature(ctx context.Context, signature string) ([]*event.Record, error) {
	return p.events.GetBySignature(ctx, signature)
}
func (p *provider) GetAllEventsByPool(ctx context.Context, poolAddress string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*event.Record, error) {
	return p.events.GetAllByPool(ctx, poolAddress, cursor, limit, direction)
}
func (p *provider) GetEventCountByType(ctx context.Context, eventType event.Type) (uint64, error) {
	return p.events.GetCountByType(ctx, eventType)
}
