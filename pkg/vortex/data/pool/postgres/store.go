package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed pool.Store
func New(db *sql.DB) pool.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements pool.Store.Put
func (s *store) Put(ctx context.Context, record *pool.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbPut(ctx, s.db); err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// Update implements pool.Store.Update
func (s *store) Update(ctx context.Context, record *pool.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbUpdate(ctx, s.db); err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// GetByAddress implements pool.Store.GetByAddress
func (s *store) GetByAddress(ctx context.Context, address string) (*pool.Record, error) {
	model, err := dbGetByAddress(ctx, s.db, address)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetByMints implements pool.Store.GetByMints
func (s *store) GetByMints(ctx context.Context, tokenAMint, tokenBMint string) (*pool.Record, error) {
	model, err := dbGetByMints(ctx, s.db, tokenAMint, tokenBMint)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetAllByAuthority implements pool.Store.GetAllByAuthority
func (s *store) GetAllByAuthority(ctx context.Context, authority string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*pool.Record, error) {
	models, err := dbGetAllByAuthority(ctx, s.db, authority, cursor, limit, direction)
	if err != nil {
		return nil, err
	}

	pools := make([]*pool.Record, len(models))
	for i, model := range models {
		pools[i] = fromModel(model)
	}
	return pools, nil
}

// Count implements pool.Store.Count
func (s *store) Count(ctx context.Context) (uint64, error) {
	return dbCount(ctx, s.db)
}
